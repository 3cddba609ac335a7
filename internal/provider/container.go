package provider

import (
	"github.com/cargomart/internal/cache"
	"github.com/cargomart/internal/config"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/queue"
	"github.com/cargomart/internal/repository"
	"github.com/cargomart/internal/service"
)

// Container dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	AddressRepo   repository.AddressRepository
	LocationRepo  repository.LocationRepository
	CargoTypeRepo repository.CargoTypeRepository
	SupplierRepo  repository.SupplierRepository
	PricingRepo   repository.PricingRepository
	CargoRepo     repository.CargoRepository
	TrackingRepo  repository.TrackingRepository
	CouponRepo    repository.CouponRepository
	PaymentRepo   repository.PaymentRepository

	// Services
	AuthService       *service.AuthService
	PricingService    *service.PricingService
	CouponService     *service.CouponService
	CargoService      *service.CargoService
	CommissionService *service.CommissionService
	SMSService        *service.SMSService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.CargoTypeRepo = repository.NewCargoTypeRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.PricingRepo = repository.NewPricingRepository(db)
	c.CargoRepo = repository.NewCargoRepository(db)
	c.TrackingRepo = repository.NewTrackingRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.PricingService = service.NewPricingService(c.PricingRepo, c.SupplierRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CargoService = service.NewCargoService(
		c.CargoRepo,
		c.TrackingRepo,
		c.AddressRepo,
		c.LocationRepo,
		c.CargoTypeRepo,
		c.SupplierRepo,
		c.PricingService,
		c.CouponService,
		service.NewTrackingNumberGenerator(),
		c.QueueClient,
	)
	c.CommissionService = service.NewCommissionService(c.PaymentRepo, c.CargoRepo, c.SupplierRepo, c.PricingService)
	c.SMSService = service.NewSMSService(&c.Config.SMS)
}
