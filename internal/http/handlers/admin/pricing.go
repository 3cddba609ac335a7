package admin

import (
	"strconv"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// PriceFieldRequest one price entry.
type PriceFieldRequest struct {
	CargoTypeID            uint         `json:"cargo_type_id" binding:"required"`
	PricingMode            string       `json:"pricing_mode" binding:"required"`
	Price                  models.Money `json:"price"`
	CommissionRate         models.Money `json:"commission_rate"`
	AvailableCourierPickup bool         `json:"available_courier_pickup"`
}

// PricingRequest pricing create/update payload.
type PricingRequest struct {
	SupplierID             uint                `json:"supplier_id"`
	CargoMethod            string              `json:"cargo_method" binding:"required"`
	PriceFields            []PriceFieldRequest `json:"price_fields" binding:"required"`
	SourceLocationIDs      []uint              `json:"source_location_ids" binding:"required"`
	DestinationLocationIDs []uint              `json:"destination_location_ids" binding:"required"`
}

func (r PricingRequest) toInput() service.PricingInput {
	fields := make([]service.PriceFieldInput, 0, len(r.PriceFields))
	for _, field := range r.PriceFields {
		fields = append(fields, service.PriceFieldInput{
			CargoTypeID:            field.CargoTypeID,
			PricingMode:            field.PricingMode,
			Price:                  field.Price,
			CommissionRate:         field.CommissionRate,
			AvailableCourierPickup: field.AvailableCourierPickup,
		})
	}
	return service.PricingInput{
		SupplierID:             r.SupplierID,
		CargoMethod:            r.CargoMethod,
		PriceFields:            fields,
		SourceLocationIDs:      r.SourceLocationIDs,
		DestinationLocationIDs: r.DestinationLocationIDs,
	}
}

// CreatePricing creates a pricing row.
func (h *Handler) CreatePricing(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	actor := actorSupplierID(c)
	input := req.toInput()
	if input.SupplierID == 0 {
		input.SupplierID = actor
	}
	pricing, err := h.PricingService.Create(input, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, pricing)
}

// UpdatePricing updates a pricing row.
func (h *Handler) UpdatePricing(c *gin.Context) {
	pricingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || pricingID == 0 {
		response.BadRequest(c, "invalid pricing id")
		return
	}
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	pricing, err := h.PricingService.Update(uint(pricingID), req.toInput(), actorSupplierID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, pricing)
}

// DeletePricing removes a pricing row.
func (h *Handler) DeletePricing(c *gin.Context) {
	pricingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || pricingID == 0 {
		response.BadRequest(c, "invalid pricing id")
		return
	}
	if err := h.PricingService.Delete(uint(pricingID), actorSupplierID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPricing lists a supplier's pricing rows.
func (h *Handler) ListPricing(c *gin.Context) {
	supplierID := actorSupplierID(c)
	if supplierID == 0 {
		parsed, err := strconv.ParseUint(c.Query("supplier_id"), 10, 64)
		if err != nil || parsed == 0 {
			response.BadRequest(c, "supplier_id required")
			return
		}
		supplierID = uint(parsed)
	}
	rows, err := h.PricingService.ListBySupplier(supplierID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, rows)
}
