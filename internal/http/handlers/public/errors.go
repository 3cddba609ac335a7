package public

import (
	"errors"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinel errors to stable response codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrCouponNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrServiceArea),
		errors.Is(err, service.ErrPricingNotFound),
		errors.Is(err, service.ErrPricingOverlap),
		errors.Is(err, service.ErrUnsupportedCargoType),
		errors.Is(err, service.ErrMinWeight),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrCouponScope),
		errors.Is(err, service.ErrCouponMinWeight),
		errors.Is(err, service.ErrStatusUnknown),
		errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, err.Error())
	default:
		logger.Errorw("request_failed", "error", err)
		response.Error(c, response.CodeInternal, "internal error")
	}
}
