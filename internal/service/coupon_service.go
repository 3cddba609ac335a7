package service

import (
	"strings"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService validates coupon codes and manages the coupon catalog.
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates the coupon service.
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// CouponInput create/update payload for a coupon.
type CouponInput struct {
	Code          string
	Title         string
	Type          string
	DiscountType  string
	DiscountValue models.Money
	MinWeight     *models.Money
	SupplierID    *uint
	ExpiresAt     *time.Time
}

// Resolve validates a coupon code against the cargo being priced and returns
// the coupon when every check passes.
func (s *CouponService) Resolve(code string, supplierID uint, totalWeight models.Money, now time.Time) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(now) {
		return nil, ErrCouponExpired
	}
	if coupon.Type == constants.CouponTypeCompany {
		if coupon.SupplierID == nil || *coupon.SupplierID != supplierID {
			return nil, ErrCouponScope
		}
	}
	if coupon.MinWeight != nil && totalWeight.Decimal.LessThan(coupon.MinWeight.Decimal) {
		return nil, ErrCouponMinWeight
	}
	return coupon, nil
}

// Discount applies the coupon to the goods fee. The result never drops below
// zero.
func (s *CouponService) Discount(coupon *models.Coupon, fee models.Money) models.Money {
	if coupon == nil {
		return fee
	}
	var discounted decimal.Decimal
	switch coupon.DiscountType {
	case constants.DiscountTypeFixed:
		discounted = fee.Decimal.Sub(coupon.DiscountValue.Decimal)
	case constants.DiscountTypePercentage:
		rate := coupon.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		discounted = fee.Decimal.Sub(fee.Decimal.Mul(rate))
	default:
		return fee
	}
	if discounted.LessThan(decimal.Zero) {
		discounted = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discounted)
}

// Create adds a coupon after uniqueness and shape checks.
func (s *CouponService) Create(input CouponInput) (*models.Coupon, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	exists, err := s.couponRepo.ExistsByCodeOrTitle(input.Code, input.Title, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrValidation
	}
	coupon := &models.Coupon{
		Code:          input.Code,
		Title:         input.Title,
		Type:          input.Type,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinWeight:     input.MinWeight,
		SupplierID:    input.SupplierID,
		ExpiresAt:     input.ExpiresAt,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update rewrites a coupon.
func (s *CouponService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrNotFound
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	exists, err := s.couponRepo.ExistsByCodeOrTitle(input.Code, input.Title, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrValidation
	}
	coupon.Code = input.Code
	coupon.Title = input.Title
	coupon.Type = input.Type
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinWeight = input.MinWeight
	coupon.SupplierID = input.SupplierID
	coupon.ExpiresAt = input.ExpiresAt
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon.
func (s *CouponService) Delete(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrNotFound
	}
	return s.couponRepo.Delete(id)
}

// List lists coupons by filter.
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

func (s *CouponService) validateInput(input *CouponInput) error {
	input.Code = strings.TrimSpace(input.Code)
	input.Title = strings.TrimSpace(input.Title)
	if input.Code == "" || input.Title == "" {
		return ErrValidation
	}
	switch input.Type {
	case constants.CouponTypeUniversal:
		input.SupplierID = nil
	case constants.CouponTypeCompany:
		if input.SupplierID == nil || *input.SupplierID == 0 {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	switch input.DiscountType {
	case constants.DiscountTypeFixed:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrValidation
		}
	case constants.DiscountTypePercentage:
		if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	if input.MinWeight != nil && input.MinWeight.Decimal.LessThan(decimal.Zero) {
		return ErrValidation
	}
	return nil
}
