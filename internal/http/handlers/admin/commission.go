package admin

import (
	"strconv"
	"time"

	"github.com/cargomart/internal/http/response"

	"github.com/gin-gonic/gin"
)

func parseWindowQuery(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) resolveSupplierScope(c *gin.Context) (uint, bool) {
	supplierID := actorSupplierID(c)
	if supplierID != 0 {
		return supplierID, true
	}
	parsed, err := strconv.ParseUint(c.Query("supplier_id"), 10, 64)
	if err != nil || parsed == 0 {
		response.BadRequest(c, "supplier_id required")
		return 0, false
	}
	return uint(parsed), true
}

// SupplierStats windowed supplier aggregates.
func (h *Handler) SupplierStats(c *gin.Context) {
	supplierID, ok := h.resolveSupplierScope(c)
	if !ok {
		return
	}
	start, end, ok := parseWindowQuery(c)
	if !ok {
		response.BadRequest(c, "start and end must be RFC3339 with end after start")
		return
	}
	stats, err := h.CommissionService.Stats(supplierID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stats)
}

// ListPaymentPeriods groups a supplier's payments into settlement periods.
func (h *Handler) ListPaymentPeriods(c *gin.Context) {
	supplierID, ok := h.resolveSupplierScope(c)
	if !ok {
		return
	}
	start, end, ok := parseWindowQuery(c)
	if !ok {
		response.BadRequest(c, "start and end must be RFC3339 with end after start")
		return
	}
	periods, err := h.CommissionService.ListPaymentPeriods(supplierID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, periods)
}

// AssignPaymentPeriodRequest period assignment payload.
type AssignPaymentPeriodRequest struct {
	SupplierID uint   `json:"supplier_id" binding:"required"`
	Period     string `json:"period" binding:"required"`
}

// AssignPaymentPeriod stamps a settlement period onto a supplier's pending
// payments. Admin only.
func (h *Handler) AssignPaymentPeriod(c *gin.Context) {
	var req AssignPaymentPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	period, err := time.Parse(time.RFC3339, req.Period)
	if err != nil {
		response.BadRequest(c, "invalid period")
		return
	}
	affected, err := h.CommissionService.AssignPaymentPeriod(req.SupplierID, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"assigned": affected})
}

// SetPeriodStatusRequest period status payload.
type SetPeriodStatusRequest struct {
	Period string `json:"period" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// SetPeriodPaymentStatus bulk-sets the payment status of one period. Admin
// only.
func (h *Handler) SetPeriodPaymentStatus(c *gin.Context) {
	var req SetPeriodStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	period, err := time.Parse(time.RFC3339, req.Period)
	if err != nil {
		response.BadRequest(c, "invalid period")
		return
	}
	affected, err := h.CommissionService.SetPeriodPaymentStatus(period, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": affected})
}
