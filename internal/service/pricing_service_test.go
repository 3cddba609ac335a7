package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type pricingServiceFixture struct {
	db       *gorm.DB
	svc      *PricingService
	supplier *models.Supplier
}

func setupPricingServiceTest(t *testing.T) *pricingServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:pricing_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Supplier{}, &models.CargoPricing{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	supplier := &models.Supplier{
		Name:              "Nordic Lines",
		MinWeight:         mny("0"),
		ServicedSourceIDs: models.UintArray{1, 2},
		IsActive:          true,
	}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}

	svc := NewPricingService(
		repository.NewPricingRepository(db),
		repository.NewSupplierRepository(db),
	)
	return &pricingServiceFixture{db: db, svc: svc, supplier: supplier}
}

func (f *pricingServiceFixture) baseInput() PricingInput {
	return PricingInput{
		SupplierID:  f.supplier.ID,
		CargoMethod: constants.CargoMethodTruck,
		PriceFields: []PriceFieldInput{
			{CargoTypeID: 7, PricingMode: constants.PricingModePerWeight, Price: mny("2"), CommissionRate: mny("1.5")},
		},
		SourceLocationIDs:      []uint{1},
		DestinationLocationIDs: []uint{10, 11},
	}
}

func TestPricingCreateRecomputesServicedDestinations(t *testing.T) {
	f := setupPricingServiceTest(t)

	if _, err := f.svc.Create(f.baseInput(), 0); err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}
	second := f.baseInput()
	second.CargoMethod = constants.CargoMethodPlane
	second.DestinationLocationIDs = []uint{11, 12}
	if _, err := f.svc.Create(second, 0); err != nil {
		t.Fatalf("create second pricing failed: %v", err)
	}

	var supplier models.Supplier
	if err := f.db.First(&supplier, f.supplier.ID).Error; err != nil {
		t.Fatalf("load supplier failed: %v", err)
	}
	for _, id := range []uint{10, 11, 12} {
		if !supplier.ServicedDestinationIDs.Contains(id) {
			t.Fatalf("serviced destinations %v missing %d", supplier.ServicedDestinationIDs, id)
		}
	}
	if len(supplier.ServicedDestinationIDs) != 3 {
		t.Fatalf("serviced destinations = %v, want 3 entries", supplier.ServicedDestinationIDs)
	}
}

func TestPricingDeleteRecomputesServicedDestinations(t *testing.T) {
	f := setupPricingServiceTest(t)

	first, err := f.svc.Create(f.baseInput(), 0)
	if err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}
	second := f.baseInput()
	second.CargoMethod = constants.CargoMethodPlane
	second.DestinationLocationIDs = []uint{12}
	if _, err := f.svc.Create(second, 0); err != nil {
		t.Fatalf("create second pricing failed: %v", err)
	}

	if err := f.svc.Delete(first.ID, 0); err != nil {
		t.Fatalf("delete pricing failed: %v", err)
	}
	var supplier models.Supplier
	if err := f.db.First(&supplier, f.supplier.ID).Error; err != nil {
		t.Fatalf("load supplier failed: %v", err)
	}
	if len(supplier.ServicedDestinationIDs) != 1 || !supplier.ServicedDestinationIDs.Contains(12) {
		t.Fatalf("serviced destinations = %v, want [12]", supplier.ServicedDestinationIDs)
	}
}

func TestPricingOverlapRejected(t *testing.T) {
	f := setupPricingServiceTest(t)
	if _, err := f.svc.Create(f.baseInput(), 0); err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}

	overlapping := f.baseInput()
	overlapping.DestinationLocationIDs = []uint{11, 20}
	if _, err := f.svc.Create(overlapping, 0); !errors.Is(err, ErrPricingOverlap) {
		t.Fatalf("err = %v, want ErrPricingOverlap", err)
	}

	// a different method may reuse the route
	otherMethod := overlapping
	otherMethod.CargoMethod = constants.CargoMethodShip
	if _, err := f.svc.Create(otherMethod, 0); err != nil {
		t.Fatalf("create other method failed: %v", err)
	}

	// disjoint destinations on the same method are fine too
	disjoint := f.baseInput()
	disjoint.SourceLocationIDs = []uint{2}
	disjoint.DestinationLocationIDs = []uint{30}
	if _, err := f.svc.Create(disjoint, 0); err != nil {
		t.Fatalf("create disjoint failed: %v", err)
	}
}

func TestPricingDuplicateCargoTypeRejected(t *testing.T) {
	f := setupPricingServiceTest(t)
	input := f.baseInput()
	input.PriceFields = append(input.PriceFields, PriceFieldInput{
		CargoTypeID: 7, PricingMode: constants.PricingModePerItem, Price: mny("5"), CommissionRate: mny("0.5"),
	})
	if _, err := f.svc.Create(input, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestPricingValidation(t *testing.T) {
	f := setupPricingServiceTest(t)

	badMethod := f.baseInput()
	badMethod.CargoMethod = "teleport"
	if _, err := f.svc.Create(badMethod, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad method err = %v, want ErrValidation", err)
	}

	badMode := f.baseInput()
	badMode.PriceFields[0].PricingMode = "per_container"
	if _, err := f.svc.Create(badMode, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad mode err = %v, want ErrValidation", err)
	}

	negativePrice := f.baseInput()
	negativePrice.PriceFields[0].Price = mny("-1")
	if _, err := f.svc.Create(negativePrice, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative price err = %v, want ErrValidation", err)
	}

	noRoutes := f.baseInput()
	noRoutes.DestinationLocationIDs = nil
	if _, err := f.svc.Create(noRoutes, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("no routes err = %v, want ErrValidation", err)
	}
}

func TestPricingSupplierScope(t *testing.T) {
	f := setupPricingServiceTest(t)

	if _, err := f.svc.Create(f.baseInput(), f.supplier.ID+5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("create err = %v, want ErrForbidden", err)
	}

	pricing, err := f.svc.Create(f.baseInput(), f.supplier.ID)
	if err != nil {
		t.Fatalf("create as owner failed: %v", err)
	}
	if _, err := f.svc.Update(pricing.ID, f.baseInput(), f.supplier.ID+5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update err = %v, want ErrForbidden", err)
	}
	if err := f.svc.Delete(pricing.ID, f.supplier.ID+5); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete err = %v, want ErrForbidden", err)
	}
}

func TestPricingResolve(t *testing.T) {
	f := setupPricingServiceTest(t)
	created, err := f.svc.Create(f.baseInput(), 0)
	if err != nil {
		t.Fatalf("create pricing failed: %v", err)
	}

	resolved, err := f.svc.Resolve(f.supplier.ID, constants.CargoMethodTruck, 1, 11)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.ID != created.ID {
		t.Fatalf("resolved %d, want %d", resolved.ID, created.ID)
	}

	if _, err := f.svc.Resolve(f.supplier.ID, constants.CargoMethodTruck, 1, 99); !errors.Is(err, ErrPricingNotFound) {
		t.Fatalf("err = %v, want ErrPricingNotFound", err)
	}
	if _, err := f.svc.Resolve(f.supplier.ID, constants.CargoMethodShip, 1, 11); !errors.Is(err, ErrPricingNotFound) {
		t.Fatalf("err = %v, want ErrPricingNotFound", err)
	}
}
