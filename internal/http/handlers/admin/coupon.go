package admin

import (
	"strconv"
	"time"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest coupon create/update payload.
type CouponRequest struct {
	Code          string        `json:"code" binding:"required"`
	Title         string        `json:"title" binding:"required"`
	Type          string        `json:"type" binding:"required"`
	DiscountType  string        `json:"discount_type" binding:"required"`
	DiscountValue models.Money  `json:"discount_value"`
	MinWeight     *models.Money `json:"min_weight"`
	SupplierID    *uint         `json:"supplier_id"`
	ExpiresAt     string        `json:"expires_at"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	input := service.CouponInput{
		Code:          r.Code,
		Title:         r.Title,
		Type:          r.Type,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MinWeight:     r.MinWeight,
		SupplierID:    r.SupplierID,
	}
	if r.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, r.ExpiresAt)
		if err != nil {
			return input, err
		}
		input.ExpiresAt = &expiresAt
	}
	return input, nil
}

// CreateCoupon creates a coupon.
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "invalid expires_at")
		return
	}
	coupon, err := h.CouponService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon updates a coupon.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		response.BadRequest(c, "invalid coupon id")
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "invalid expires_at")
		return
	}
	coupon, err := h.CouponService.Update(uint(couponID), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		response.BadRequest(c, "invalid coupon id")
		return
	}
	if err := h.CouponService.Delete(uint(couponID)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCoupons lists coupons.
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	supplierID, _ := strconv.ParseUint(c.Query("supplier_id"), 10, 64)

	coupons, total, err := h.CouponService.List(repository.CouponListFilter{
		Code:       c.Query("code"),
		Type:       c.Query("type"),
		SupplierID: uint(supplierID),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	totalPage := total / int64(pageSize)
	if pageSize > 0 && total%int64(pageSize) != 0 {
		totalPage++
	}
	response.SuccessWithPage(c, coupons, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
