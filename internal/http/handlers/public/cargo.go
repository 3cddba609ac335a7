package public

import (
	"strconv"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// CargoItemRequest one shipment line.
type CargoItemRequest struct {
	CargoTypeID uint         `json:"cargo_type_id" binding:"required"`
	Weight      models.Money `json:"weight"`
	Qty         int          `json:"qty"`
}

// CreateCargoRequest create-shipment payload.
type CreateCargoRequest struct {
	SupplierID            uint               `json:"supplier_id" binding:"required"`
	CargoMethod           string             `json:"cargo_method" binding:"required"`
	SourceLocationID      uint               `json:"source_location_id" binding:"required"`
	DestinationLocationID uint               `json:"destination_location_id" binding:"required"`
	PickupAddressID       uint               `json:"pickup_address_id" binding:"required"`
	DeliveryAddressID     uint               `json:"delivery_address_id" binding:"required"`
	Items                 []CargoItemRequest `json:"items" binding:"required"`
	CouponCode            string             `json:"coupon_code"`
	Note                  string             `json:"note"`
}

func (r CreateCargoRequest) toInput(userID uint) service.CreateCargoInput {
	items := make([]service.CargoItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.CargoItemInput{
			CargoTypeID: item.CargoTypeID,
			Weight:      item.Weight,
			Qty:         item.Qty,
		})
	}
	return service.CreateCargoInput{
		UserID:                userID,
		SupplierID:            r.SupplierID,
		CargoMethod:           r.CargoMethod,
		SourceLocationID:      r.SourceLocationID,
		DestinationLocationID: r.DestinationLocationID,
		PickupAddressID:       r.PickupAddressID,
		DeliveryAddressID:     r.DeliveryAddressID,
		Items:                 items,
		CouponCode:            r.CouponCode,
		Note:                  r.Note,
	}
}

// CreateCargo creates a shipment request.
func (h *Handler) CreateCargo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	var req CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cargo, err := h.CargoService.CreateCargo(req.toInput(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cargo)
}

// QuoteCargo prices a prospective shipment without creating it.
func (h *Handler) QuoteCargo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	var req CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	breakdown, err := h.CargoService.QuoteFees(req.toInput(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, breakdown)
}

// UpdateCargoRequest mutable shipment fields.
type UpdateCargoRequest struct {
	PickupAddressID   uint    `json:"pickup_address_id"`
	DeliveryAddressID uint    `json:"delivery_address_id"`
	Note              *string `json:"note"`
}

// UpdateCargo amends a shipment that has not been picked up yet.
func (h *Handler) UpdateCargo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	cargoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cargoID == 0 {
		response.BadRequest(c, "invalid cargo id")
		return
	}
	var req UpdateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cargo, err := h.CargoService.UpdateCargo(service.UpdateCargoInput{
		UserID:            userID,
		CargoID:           uint(cargoID),
		PickupAddressID:   req.PickupAddressID,
		DeliveryAddressID: req.DeliveryAddressID,
		Note:              req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cargo)
}

// GetCargo fetches one of the caller's cargos.
func (h *Handler) GetCargo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	cargoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || cargoID == 0 {
		response.BadRequest(c, "invalid cargo id")
		return
	}
	cargo, err := h.CargoService.GetUserCargo(userID, uint(cargoID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, cargo)
}

// ListCargos lists the caller's cargos.
func (h *Handler) ListCargos(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	page, pageSize := parsePageQuery(c)
	cargos, total, err := h.CargoService.ListUserCargos(userID, c.Query("status"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, cargos, buildPagination(page, pageSize, total))
}

func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
