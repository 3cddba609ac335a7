package admin

import (
	"strconv"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateCargoStatusRequest status change payload.
type UpdateCargoStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateCargoStatus changes a cargo's lifecycle status. Suppliers can only
// touch their own cargos.
func (h *Handler) UpdateCargoStatus(c *gin.Context) {
	cargoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cargoID == 0 {
		response.BadRequest(c, "invalid cargo id")
		return
	}
	var req UpdateCargoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cargo, err := h.CargoService.UpdateCargoStatus(service.UpdateStatusInput{
		CargoID:    uint(cargoID),
		NewStatus:  req.Status,
		Note:       req.Note,
		SupplierID: actorSupplierID(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cargo)
}

// ListSupplierCargos lists cargos in the caller's supplier scope.
func (h *Handler) ListSupplierCargos(c *gin.Context) {
	supplierID := actorSupplierID(c)
	if supplierID == 0 {
		parsed, err := strconv.ParseUint(c.Query("supplier_id"), 10, 64)
		if err != nil || parsed == 0 {
			response.BadRequest(c, "supplier_id required")
			return
		}
		supplierID = uint(parsed)
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	cargos, total, err := h.CargoService.ListSupplierCargos(supplierID, c.Query("status"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	response.SuccessWithPage(c, cargos, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
