package service

import (
	"strings"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/queue"
	"github.com/cargomart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Per-item handling charge added to the service fee for every unit priced
// per item.
var perItemHandlingCharge = decimal.NewFromInt(3)

// CargoService creates shipments and serves cargo queries.
type CargoService struct {
	cargoRepo     repository.CargoRepository
	trackingRepo  repository.TrackingRepository
	addressRepo   repository.AddressRepository
	locationRepo  repository.LocationRepository
	cargoTypeRepo repository.CargoTypeRepository
	supplierRepo  repository.SupplierRepository
	pricing       *PricingService
	coupons       *CouponService
	trackingGen   TrackingNumberGenerator
	queueClient   *queue.Client
}

// NewCargoService creates the cargo service.
func NewCargoService(
	cargoRepo repository.CargoRepository,
	trackingRepo repository.TrackingRepository,
	addressRepo repository.AddressRepository,
	locationRepo repository.LocationRepository,
	cargoTypeRepo repository.CargoTypeRepository,
	supplierRepo repository.SupplierRepository,
	pricing *PricingService,
	coupons *CouponService,
	trackingGen TrackingNumberGenerator,
	queueClient *queue.Client,
) *CargoService {
	return &CargoService{
		cargoRepo:     cargoRepo,
		trackingRepo:  trackingRepo,
		addressRepo:   addressRepo,
		locationRepo:  locationRepo,
		cargoTypeRepo: cargoTypeRepo,
		supplierRepo:  supplierRepo,
		pricing:       pricing,
		coupons:       coupons,
		trackingGen:   trackingGen,
		queueClient:   queueClient,
	}
}

// CargoItemInput one shipment line of a create request.
type CargoItemInput struct {
	CargoTypeID uint
	Weight      models.Money
	Qty         int
}

// CreateCargoInput create-shipment payload.
type CreateCargoInput struct {
	UserID                uint
	SupplierID            uint
	CargoMethod           string
	SourceLocationID      uint
	DestinationLocationID uint
	PickupAddressID       uint
	DeliveryAddressID     uint
	Items                 []CargoItemInput
	CouponCode            string
	Note                  string
}

// FeeBreakdown the computed charges of a shipment.
type FeeBreakdown struct {
	Fee         models.Money `json:"fee"`
	ServiceFee  models.Money `json:"service_fee"`
	TotalFee    models.Money `json:"total_fee"`
	TotalWeight models.Money `json:"total_weight"`
	LineCount   int          `json:"line_count"`
}

// CreateCargo validates and prices a shipment request, persists the cargo
// with its items and the first history entry in one transaction, then pushes
// the notification tasks.
func (s *CargoService) CreateCargo(input CreateCargoInput) (*models.Cargo, error) {
	input.CargoMethod = strings.ToLower(strings.TrimSpace(input.CargoMethod))
	switch input.CargoMethod {
	case constants.CargoMethodPlane, constants.CargoMethodTruck, constants.CargoMethodShip:
	default:
		return nil, ErrValidation
	}
	if input.UserID == 0 || input.SupplierID == 0 || len(input.Items) == 0 {
		return nil, ErrValidation
	}
	if input.SourceLocationID == 0 || input.DestinationLocationID == 0 {
		return nil, ErrValidation
	}

	pickup, delivery, err := s.resolveAddresses(input)
	if err != nil {
		return nil, err
	}
	supplier, err := s.resolveSupplier(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkLocations(input.SourceLocationID, input.DestinationLocationID); err != nil {
		return nil, err
	}
	pricing, err := s.pricing.Resolve(input.SupplierID, input.CargoMethod, input.SourceLocationID, input.DestinationLocationID)
	if err != nil {
		return nil, err
	}

	breakdown, items, err := s.computeFees(input.Items, pricing, supplier, input.CouponCode)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trackingNo, err := s.trackingGen.Next(now)
	if err != nil {
		return nil, err
	}

	cargo := &models.Cargo{
		TrackingNo:            trackingNo,
		UserID:                input.UserID,
		SupplierID:            input.SupplierID,
		Status:                constants.CargoStatusNewRequest,
		CargoMethod:           input.CargoMethod,
		SourceLocationID:      input.SourceLocationID,
		DestinationLocationID: input.DestinationLocationID,
		PickupAddress:         pickup.Snapshot(),
		DeliveryAddress:       delivery.Snapshot(),
		TotalWeight:           breakdown.TotalWeight,
		LineCount:             breakdown.LineCount,
		CouponCode:            strings.TrimSpace(input.CouponCode),
		Fee:                   breakdown.Fee,
		ServiceFee:            breakdown.ServiceFee,
		TotalFee:              breakdown.TotalFee,
		EstimatedDeliveryDate: now.AddDate(0, 0, supplier.DeliveryEstimationMax),
		Note:                  strings.TrimSpace(input.Note),
		Items:                 items,
	}

	err = s.cargoRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.cargoRepo.WithTx(tx).Create(cargo); err != nil {
			return err
		}
		return s.trackingRepo.WithTx(tx).Append(&models.CargoTracking{
			CargoID: cargo.ID,
			Status:  constants.CargoStatusNewRequest,
		})
	})
	if err != nil {
		return nil, err
	}

	s.enqueueCreated(cargo)
	return cargo, nil
}

// QuoteFees prices a prospective shipment without persisting anything.
func (s *CargoService) QuoteFees(input CreateCargoInput) (*FeeBreakdown, error) {
	supplier, err := s.resolveSupplier(input)
	if err != nil {
		return nil, err
	}
	pricing, err := s.pricing.Resolve(input.SupplierID, strings.ToLower(strings.TrimSpace(input.CargoMethod)), input.SourceLocationID, input.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	breakdown, _, err := s.computeFees(input.Items, pricing, supplier, input.CouponCode)
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}

// GetUserCargo fetches one cargo owned by the user.
func (s *CargoService) GetUserCargo(userID, cargoID uint) (*models.Cargo, error) {
	cargo, err := s.cargoRepo.GetByID(cargoID)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, ErrNotFound
	}
	if cargo.UserID != userID {
		return nil, ErrForbidden
	}
	return cargo, nil
}

// UpdateCargoInput mutable shipment fields. Nil or zero values leave the
// field unchanged.
type UpdateCargoInput struct {
	UserID            uint
	CargoID           uint
	PickupAddressID   uint
	DeliveryAddressID uint
	Note              *string
}

// UpdateCargo lets the owner amend a shipment before pickup. Tracking number,
// status, pricing and the computed fees are never touched here.
func (s *CargoService) UpdateCargo(input UpdateCargoInput) (*models.Cargo, error) {
	cargo, err := s.GetUserCargo(input.UserID, input.CargoID)
	if err != nil {
		return nil, err
	}
	switch cargo.Status {
	case constants.CargoStatusNewRequest, constants.CargoStatusAwaitingPickup:
	default:
		return nil, ErrValidation
	}

	updates := map[string]interface{}{}
	if input.PickupAddressID != 0 {
		snapshot, err := s.ownedAddressSnapshot(input.UserID, input.PickupAddressID)
		if err != nil {
			return nil, err
		}
		updates["pickup_address"] = snapshot
	}
	if input.DeliveryAddressID != 0 {
		snapshot, err := s.ownedAddressSnapshot(input.UserID, input.DeliveryAddressID)
		if err != nil {
			return nil, err
		}
		updates["delivery_address"] = snapshot
	}
	if input.Note != nil {
		updates["note"] = strings.TrimSpace(*input.Note)
	}
	if len(updates) == 0 {
		return cargo, nil
	}
	if err := s.cargoRepo.UpdateFields(cargo.ID, updates); err != nil {
		return nil, err
	}
	return s.cargoRepo.GetByID(cargo.ID)
}

func (s *CargoService) ownedAddressSnapshot(userID, addressID uint) (models.AddressSnapshot, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		return models.AddressSnapshot{}, err
	}
	if address == nil {
		return models.AddressSnapshot{}, ErrNotFound
	}
	if address.UserID != userID {
		return models.AddressSnapshot{}, ErrForbidden
	}
	return address.Snapshot(), nil
}

// ListUserCargos lists the user's cargos.
func (s *CargoService) ListUserCargos(userID uint, status string, page, pageSize int) ([]models.Cargo, int64, error) {
	return s.cargoRepo.List(repository.CargoListFilter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListSupplierCargos lists a supplier's cargos.
func (s *CargoService) ListSupplierCargos(supplierID uint, status string, page, pageSize int) ([]models.Cargo, int64, error) {
	return s.cargoRepo.List(repository.CargoListFilter{
		SupplierID: supplierID,
		Status:     status,
		Page:       page,
		PageSize:   pageSize,
	})
}

// TrackedCargo the public tracking view of one cargo. Address contacts are
// masked unless the caller presented the owning supplier's auth token.
type TrackedCargo struct {
	TrackingNo            string                 `json:"tracking_no"`
	Status                string                 `json:"status"`
	CargoMethod           string                 `json:"cargo_method"`
	SourceLocationID      uint                   `json:"source_location_id"`
	DestinationLocationID uint                   `json:"destination_location_id"`
	PickupAddress         models.AddressSnapshot `json:"pickup_address"`
	DeliveryAddress       models.AddressSnapshot `json:"delivery_address"`
	TotalWeight           models.Money           `json:"total_weight"`
	EstimatedDeliveryDate time.Time              `json:"estimated_delivery_date"`
	DeliveredAt           *time.Time             `json:"delivered_at,omitempty"`
	History               []models.CargoTracking `json:"history"`
}

// TrackByNumber serves the public tracking endpoint. authToken may be empty;
// a valid token belonging to the cargo's supplier unmasks contact details.
func (s *CargoService) TrackByNumber(trackingNo, authToken string) (*TrackedCargo, error) {
	trackingNo = strings.TrimSpace(trackingNo)
	if trackingNo == "" {
		return nil, ErrValidation
	}
	cargo, err := s.cargoRepo.FindOne(repository.CargoMatchFilter{TrackingNo: trackingNo})
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, ErrNotFound
	}

	unmask := false
	if authToken != "" {
		supplier, err := s.supplierRepo.GetByTrackingToken(authToken)
		if err != nil {
			return nil, err
		}
		if supplier != nil && supplier.ID == cargo.SupplierID {
			unmask = true
		}
	}

	view := &TrackedCargo{
		TrackingNo:            cargo.TrackingNo,
		Status:                cargo.Status,
		CargoMethod:           cargo.CargoMethod,
		SourceLocationID:      cargo.SourceLocationID,
		DestinationLocationID: cargo.DestinationLocationID,
		PickupAddress:         cargo.PickupAddress,
		DeliveryAddress:       cargo.DeliveryAddress,
		TotalWeight:           cargo.TotalWeight,
		EstimatedDeliveryDate: cargo.EstimatedDeliveryDate,
		DeliveredAt:           cargo.DeliveredAt,
		History:               cargo.Tracking,
	}
	if !unmask {
		view.PickupAddress = maskAddress(view.PickupAddress)
		view.DeliveryAddress = maskAddress(view.DeliveryAddress)
	}
	return view, nil
}

func (s *CargoService) resolveAddresses(input CreateCargoInput) (*models.UserAddress, *models.UserAddress, error) {
	pickup, err := s.addressRepo.GetByID(input.PickupAddressID)
	if err != nil {
		return nil, nil, err
	}
	delivery, err := s.addressRepo.GetByID(input.DeliveryAddressID)
	if err != nil {
		return nil, nil, err
	}
	if pickup == nil || delivery == nil {
		return nil, nil, ErrNotFound
	}
	if pickup.UserID != input.UserID || delivery.UserID != input.UserID {
		return nil, nil, ErrForbidden
	}
	return pickup, delivery, nil
}

func (s *CargoService) resolveSupplier(input CreateCargoInput) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.IsActive {
		return nil, ErrNotFound
	}
	if !supplier.ServicedSourceIDs.Contains(input.SourceLocationID) ||
		!supplier.ServicedDestinationIDs.Contains(input.DestinationLocationID) {
		return nil, ErrServiceArea
	}
	return supplier, nil
}

func (s *CargoService) checkLocations(sourceID, destinationID uint) error {
	locations, err := s.locationRepo.ListByIDs([]uint{sourceID, destinationID})
	if err != nil {
		return err
	}
	found := make(map[uint]bool, len(locations))
	for _, location := range locations {
		found[location.ID] = true
	}
	if !found[sourceID] || !found[destinationID] {
		return ErrNotFound
	}
	return nil
}

// computeFees accumulates the goods fee per pricing mode, applies the coupon
// to the goods fee only, and adds the weight-tiered service fee.
func (s *CargoService) computeFees(items []CargoItemInput, pricing *models.CargoPricing, supplier *models.Supplier, couponCode string) (*FeeBreakdown, []models.CargoItem, error) {
	fee := decimal.Zero
	totalWeight := decimal.Zero
	lineCount := 0
	perItemUnits := int64(0)
	rows := make([]models.CargoItem, 0, len(items))

	for _, item := range items {
		if item.CargoTypeID == 0 {
			return nil, nil, ErrValidation
		}
		cargoType, err := s.cargoTypeRepo.GetByID(item.CargoTypeID)
		if err != nil {
			return nil, nil, err
		}
		if cargoType == nil {
			return nil, nil, ErrNotFound
		}
		grouping, err := s.cargoTypeRepo.HasChildren(item.CargoTypeID)
		if err != nil {
			return nil, nil, err
		}
		if grouping {
			return nil, nil, ErrValidation
		}
		field, ok := pricing.PriceFields.Find(item.CargoTypeID)
		if !ok {
			return nil, nil, ErrUnsupportedCargoType
		}

		switch field.PricingMode {
		case constants.PricingModePerWeight:
			if item.Weight.Decimal.LessThanOrEqual(decimal.Zero) {
				return nil, nil, ErrValidation
			}
			fee = fee.Add(item.Weight.Decimal.Mul(field.Price.Decimal))
		case constants.PricingModePerItem:
			if item.Qty <= 0 {
				return nil, nil, ErrValidation
			}
			fee = fee.Add(decimal.NewFromInt(int64(item.Qty)).Mul(field.Price.Decimal))
			perItemUnits += int64(item.Qty)
		default:
			return nil, nil, ErrValidation
		}
		if item.Weight.Decimal.LessThan(decimal.Zero) {
			return nil, nil, ErrValidation
		}
		totalWeight = totalWeight.Add(item.Weight.Decimal)
		lineCount++
		rows = append(rows, models.CargoItem{
			CargoTypeID: item.CargoTypeID,
			Weight:      item.Weight,
			Qty:         item.Qty,
		})
	}

	if totalWeight.LessThan(supplier.MinWeight.Decimal) {
		return nil, nil, ErrMinWeight
	}

	serviceFee := serviceFeeRate(totalWeight).Mul(totalWeight).
		Add(decimal.NewFromInt(perItemUnits).Mul(perItemHandlingCharge))

	if code := strings.TrimSpace(couponCode); code != "" {
		coupon, err := s.coupons.Resolve(code, supplier.ID, models.NewMoneyFromDecimal(totalWeight), time.Now())
		if err != nil {
			return nil, nil, err
		}
		fee = s.coupons.Discount(coupon, models.NewMoneyFromDecimal(fee)).Decimal
	}

	breakdown := &FeeBreakdown{
		Fee:         models.NewMoneyFromDecimal(fee),
		ServiceFee:  models.NewMoneyFromDecimal(serviceFee),
		TotalFee:    models.NewMoneyFromDecimal(fee.Add(serviceFee)),
		TotalWeight: models.NewMoneyFromDecimal(totalWeight),
		LineCount:   lineCount,
	}
	return breakdown, rows, nil
}

// serviceFeeRate weight-tiered platform rate. Heavier shipments pay a lower
// rate, bulk freight pays none.
func serviceFeeRate(totalWeight decimal.Decimal) decimal.Decimal {
	switch {
	case totalWeight.LessThan(decimal.NewFromInt(10)):
		return decimal.NewFromFloat(0.25)
	case totalWeight.LessThan(decimal.NewFromInt(20)):
		return decimal.NewFromFloat(0.20)
	case totalWeight.LessThan(decimal.NewFromInt(100)):
		return decimal.NewFromFloat(0.10)
	default:
		return decimal.Zero
	}
}

func (s *CargoService) enqueueCreated(cargo *models.Cargo) {
	if err := s.queueClient.EnqueueCargoCreated(queue.CargoCreatedPayload{
		CargoID:    cargo.ID,
		TrackingNo: cargo.TrackingNo,
		UserID:     cargo.UserID,
	}); err != nil {
		logger.Errorw("cargo_created_enqueue_failed", "cargo_id", cargo.ID, "error", err)
	}
	if err := s.queueClient.EnqueueCargoCreatedSupplier(queue.CargoCreatedSupplierPayload{
		CargoID:    cargo.ID,
		SupplierID: cargo.SupplierID,
	}); err != nil {
		logger.Errorw("cargo_created_supplier_enqueue_failed", "cargo_id", cargo.ID, "error", err)
	}
}

func maskAddress(address models.AddressSnapshot) models.AddressSnapshot {
	address.ContactName = maskText(address.ContactName)
	address.ContactSurname = maskText(address.ContactSurname)
	address.Phone = maskPhone(address.Phone)
	address.Line = maskText(address.Line)
	return address
}

func maskText(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return value
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

func maskPhone(value string) string {
	runes := []rune(value)
	if len(runes) <= 4 {
		return value
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
