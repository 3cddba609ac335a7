package admin

import (
	"strconv"
	"strings"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/models"

	"github.com/gin-gonic/gin"
)

// SupplierRequest supplier create/update payload.
type SupplierRequest struct {
	Name                  string       `json:"name" binding:"required"`
	Phone                 string       `json:"phone"`
	MinWeight             models.Money `json:"min_weight"`
	DeliveryEstimationMin int          `json:"delivery_estimation_min"`
	DeliveryEstimationMax int          `json:"delivery_estimation_max"`
	ServicedSourceIDs     []uint       `json:"serviced_source_ids"`
	TrackingAuthToken     string       `json:"tracking_auth_token"`
	IsActive              *bool        `json:"is_active"`
}

// CreateSupplier registers a carrier. Admin only.
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	supplier := &models.Supplier{
		Name:                  strings.TrimSpace(req.Name),
		Phone:                 strings.TrimSpace(req.Phone),
		MinWeight:             req.MinWeight,
		DeliveryEstimationMin: req.DeliveryEstimationMin,
		DeliveryEstimationMax: req.DeliveryEstimationMax,
		ServicedSourceIDs:     models.UintArray(req.ServicedSourceIDs),
		TrackingAuthToken:     strings.TrimSpace(req.TrackingAuthToken),
		IsActive:              true,
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	if err := h.SupplierRepo.Create(supplier); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplier)
}

// UpdateSupplier updates a carrier. Admin only. The serviced destination set
// is derived from pricing rows and not editable here.
func (h *Handler) UpdateSupplier(c *gin.Context) {
	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || supplierID == 0 {
		response.BadRequest(c, "invalid supplier id")
		return
	}
	supplier, err := h.SupplierRepo.GetByID(uint(supplierID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if supplier == nil {
		response.NotFound(c, "supplier not found")
		return
	}
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	supplier.Name = strings.TrimSpace(req.Name)
	supplier.Phone = strings.TrimSpace(req.Phone)
	supplier.MinWeight = req.MinWeight
	supplier.DeliveryEstimationMin = req.DeliveryEstimationMin
	supplier.DeliveryEstimationMax = req.DeliveryEstimationMax
	supplier.ServicedSourceIDs = models.UintArray(req.ServicedSourceIDs)
	if req.TrackingAuthToken != "" {
		supplier.TrackingAuthToken = strings.TrimSpace(req.TrackingAuthToken)
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	if err := h.SupplierRepo.Update(supplier); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplier)
}

// ListSuppliers lists active carriers.
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.SupplierRepo.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, suppliers)
}
