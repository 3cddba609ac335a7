package service

import (
	"strings"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingService manages per-supplier pricing tables.
type PricingService struct {
	pricingRepo  repository.PricingRepository
	supplierRepo repository.SupplierRepository
}

// NewPricingService creates the pricing service.
func NewPricingService(pricingRepo repository.PricingRepository, supplierRepo repository.SupplierRepository) *PricingService {
	return &PricingService{
		pricingRepo:  pricingRepo,
		supplierRepo: supplierRepo,
	}
}

// PriceFieldInput one price entry of a submitted price list.
type PriceFieldInput struct {
	CargoTypeID            uint
	PricingMode            string
	Price                  models.Money
	CommissionRate         models.Money
	AvailableCourierPickup bool
}

// PricingInput create/update payload for a pricing row.
type PricingInput struct {
	SupplierID             uint
	CargoMethod            string
	PriceFields            []PriceFieldInput
	SourceLocationIDs      []uint
	DestinationLocationIDs []uint
}

// Create adds a pricing row. actorSupplierID is zero for admins; suppliers
// may only create rows for themselves.
func (s *PricingService) Create(input PricingInput, actorSupplierID uint) (*models.CargoPricing, error) {
	if actorSupplierID != 0 && actorSupplierID != input.SupplierID {
		return nil, ErrForbidden
	}
	fields, err := s.validateInput(&input)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.GetByID(input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	if err := s.checkOverlap(input, 0); err != nil {
		return nil, err
	}

	pricing := &models.CargoPricing{
		SupplierID:             input.SupplierID,
		CargoMethod:            input.CargoMethod,
		PriceFields:            fields,
		SourceLocationIDs:      models.UintArray(input.SourceLocationIDs),
		DestinationLocationIDs: models.UintArray(input.DestinationLocationIDs),
	}
	if err := s.pricingRepo.Create(pricing); err != nil {
		return nil, err
	}
	if err := s.recomputeServicedDestinations(input.SupplierID); err != nil {
		return nil, err
	}
	return pricing, nil
}

// Update rewrites a pricing row under the same invariants as Create.
func (s *PricingService) Update(id uint, input PricingInput, actorSupplierID uint) (*models.CargoPricing, error) {
	pricing, err := s.pricingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		return nil, ErrNotFound
	}
	if actorSupplierID != 0 && actorSupplierID != pricing.SupplierID {
		return nil, ErrForbidden
	}
	input.SupplierID = pricing.SupplierID
	fields, err := s.validateInput(&input)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(input, id); err != nil {
		return nil, err
	}

	pricing.CargoMethod = input.CargoMethod
	pricing.PriceFields = fields
	pricing.SourceLocationIDs = models.UintArray(input.SourceLocationIDs)
	pricing.DestinationLocationIDs = models.UintArray(input.DestinationLocationIDs)
	if err := s.pricingRepo.Update(pricing); err != nil {
		return nil, err
	}
	if err := s.recomputeServicedDestinations(pricing.SupplierID); err != nil {
		return nil, err
	}
	return pricing, nil
}

// Delete removes a pricing row and recomputes the supplier's serviced set.
func (s *PricingService) Delete(id uint, actorSupplierID uint) error {
	pricing, err := s.pricingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pricing == nil {
		return ErrNotFound
	}
	if actorSupplierID != 0 && actorSupplierID != pricing.SupplierID {
		return ErrForbidden
	}
	if err := s.pricingRepo.Delete(id); err != nil {
		return err
	}
	return s.recomputeServicedDestinations(pricing.SupplierID)
}

// ListBySupplier lists a supplier's pricing rows.
func (s *PricingService) ListBySupplier(supplierID uint) ([]models.CargoPricing, error) {
	return s.pricingRepo.ListBySupplier(supplierID)
}

// Resolve finds the unique pricing row covering the route.
func (s *PricingService) Resolve(supplierID uint, method string, sourceID, destinationID uint) (*models.CargoPricing, error) {
	rows, err := s.pricingRepo.ListBySupplierMethod(supplierID, method)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Covers(sourceID, destinationID) {
			return &rows[i], nil
		}
	}
	return nil, ErrPricingNotFound
}

func (s *PricingService) validateInput(input *PricingInput) (models.PriceFieldList, error) {
	input.CargoMethod = strings.ToLower(strings.TrimSpace(input.CargoMethod))
	switch input.CargoMethod {
	case constants.CargoMethodPlane, constants.CargoMethodTruck, constants.CargoMethodShip:
	default:
		return nil, ErrValidation
	}
	if input.SupplierID == 0 || len(input.PriceFields) == 0 {
		return nil, ErrValidation
	}
	if len(input.SourceLocationIDs) == 0 || len(input.DestinationLocationIDs) == 0 {
		return nil, ErrValidation
	}

	seen := make(map[uint]struct{}, len(input.PriceFields))
	fields := make(models.PriceFieldList, 0, len(input.PriceFields))
	for _, field := range input.PriceFields {
		if field.CargoTypeID == 0 {
			return nil, ErrValidation
		}
		// Duplicate cargo types in one price list are rejected.
		if _, ok := seen[field.CargoTypeID]; ok {
			return nil, ErrValidation
		}
		seen[field.CargoTypeID] = struct{}{}

		mode := strings.ToLower(strings.TrimSpace(field.PricingMode))
		if mode != constants.PricingModePerWeight && mode != constants.PricingModePerItem {
			return nil, ErrValidation
		}
		if field.Price.Decimal.LessThan(decimal.Zero) || field.CommissionRate.Decimal.LessThan(decimal.Zero) {
			return nil, ErrValidation
		}
		fields = append(fields, models.PriceField{
			CargoTypeID:            field.CargoTypeID,
			PricingMode:            mode,
			Price:                  field.Price,
			CommissionRate:         field.CommissionRate,
			AvailableCourierPickup: field.AvailableCourierPickup,
		})
	}
	return fields, nil
}

// checkOverlap enforces at most one pricing row per (supplier, method,
// overlapping route) pair.
func (s *PricingService) checkOverlap(input PricingInput, excludeID uint) error {
	rows, err := s.pricingRepo.ListBySupplierMethod(input.SupplierID, input.CargoMethod)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.ID == excludeID {
			continue
		}
		if intersects(row.SourceLocationIDs, input.SourceLocationIDs) &&
			intersects(row.DestinationLocationIDs, input.DestinationLocationIDs) {
			return ErrPricingOverlap
		}
	}
	return nil
}

// recomputeServicedDestinations rewrites the supplier's aggregate serviced
// destination set as the union across its pricing rows.
func (s *PricingService) recomputeServicedDestinations(supplierID uint) error {
	rows, err := s.pricingRepo.ListBySupplier(supplierID)
	if err != nil {
		return err
	}
	seen := make(map[uint]struct{})
	union := models.UintArray{}
	for _, row := range rows {
		for _, id := range row.DestinationLocationIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return s.supplierRepo.UpdateServicedDestinations(supplierID, union, time.Now())
}

func intersects(a models.UintArray, b []uint) bool {
	for _, id := range b {
		if a.Contains(id) {
			return true
		}
	}
	return false
}
