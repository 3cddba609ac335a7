package router

import (
	"fmt"
	"strings"

	"github.com/cargomart/internal/cache"
	"github.com/cargomart/internal/config"
	"github.com/cargomart/internal/constants"
	adminhandlers "github.com/cargomart/internal/http/handlers/admin"
	publichandlers "github.com/cargomart/internal/http/handlers/public"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routing tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cm"
	}
	redisClient := cache.Client()
	trackRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:track", redisPrefix),
		WindowSeconds: cfg.Security.TrackRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.TrackRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			public.GET("/track-cargo/:trackingNumber",
				RateLimitMiddleware(redisClient, trackRule, KeyByIP),
				publicHandler.TrackCargo)
			public.GET("/cargo-statuses", publicHandler.ListCargoStatuses)
			public.GET("/suppliers", adminHandler.ListSuppliers)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", publicHandler.Login)
		}

		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.POST("/cargo", publicHandler.CreateCargo)
			user.POST("/cargo/quote", publicHandler.QuoteCargo)
			user.GET("/cargo", publicHandler.ListCargos)
			user.GET("/cargo/:id", publicHandler.GetCargo)
			user.PUT("/cargo/:id", publicHandler.UpdateCargo)
		}

		supplier := apiV1.Group("/supplier")
		supplier.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RequireRoles(constants.RoleSupplier, constants.RoleAdmin),
		)
		{
			supplier.GET("/cargo", adminHandler.ListSupplierCargos)
			supplier.PUT("/cargo/:id/status", adminHandler.UpdateCargoStatus)
			supplier.GET("/cargo-pricing", adminHandler.ListPricing)
			supplier.POST("/cargo-pricing", adminHandler.CreatePricing)
			supplier.PUT("/cargo-pricing/:id", adminHandler.UpdatePricing)
			supplier.DELETE("/cargo-pricing/:id", adminHandler.DeletePricing)
			supplier.GET("/stats", adminHandler.SupplierStats)
			supplier.GET("/payment-periods", adminHandler.ListPaymentPeriods)
		}

		admin := apiV1.Group("/admin")
		admin.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RequireRoles(constants.RoleAdmin),
		)
		{
			admin.POST("/suppliers", adminHandler.CreateSupplier)
			admin.PUT("/suppliers/:id", adminHandler.UpdateSupplier)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.POST("/payment-periods/assign", adminHandler.AssignPaymentPeriod)
			admin.PUT("/payment-periods/status", adminHandler.SetPeriodPaymentStatus)
		}
	}

	return r
}
