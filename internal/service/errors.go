package service

import "errors"

// Sentinel errors shared by the services; handlers map them to stable
// response codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("invalid input")
	ErrForbidden          = errors.New("operation not allowed")
	ErrInvalidCredentials = errors.New("invalid phone or password")

	ErrServiceArea          = errors.New("location not serviced by supplier")
	ErrPricingNotFound      = errors.New("no pricing row for route")
	ErrPricingOverlap       = errors.New("pricing row overlaps an existing route")
	ErrUnsupportedCargoType = errors.New("cargo type not priced for route")
	ErrMinWeight            = errors.New("total weight below supplier minimum")

	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExpired   = errors.New("coupon expired")
	ErrCouponScope     = errors.New("coupon not valid for supplier")
	ErrCouponMinWeight = errors.New("cargo below coupon minimum weight")

	ErrStatusUnknown = errors.New("unknown cargo status")
	ErrInvalidPeriod = errors.New("period must fall on the 1st or 15th")
)
