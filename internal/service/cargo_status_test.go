package service

import (
	"errors"
	"testing"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"
)

func TestUpdateCargoStatusAppendsHistory(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	updated, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		CargoID:   cargo.ID,
		NewStatus: constants.CargoStatusAwaitingPickup,
		Note:      "courier assigned",
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.CargoStatusAwaitingPickup {
		t.Fatalf("status = %s, want %s", updated.Status, constants.CargoStatusAwaitingPickup)
	}

	var rows []models.CargoTracking
	if err := f.db.Where("cargo_id = ?", cargo.ID).Order("created_at asc").Find(&rows).Error; err != nil {
		t.Fatalf("load tracking failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("tracking rows = %d, want 2", len(rows))
	}
	if rows[1].Status != constants.CargoStatusAwaitingPickup || rows[1].Note != "courier assigned" {
		t.Fatalf("unexpected tracking row: %+v", rows[1])
	}
}

func TestUpdateCargoStatusDelivered(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	updated, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		CargoID:   cargo.ID,
		NewStatus: constants.CargoStatusDelivered,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.DeliveredAt == nil {
		t.Fatalf("delivered_at not set")
	}
	if !updated.ReviewEligible {
		t.Fatalf("review_eligible not set")
	}

	var stored models.Cargo
	if err := f.db.First(&stored, cargo.ID).Error; err != nil {
		t.Fatalf("load cargo failed: %v", err)
	}
	if stored.Status != constants.CargoStatusDelivered {
		t.Fatalf("stored status = %s, want %s", stored.Status, constants.CargoStatusDelivered)
	}
	if stored.DeliveredAt == nil || !stored.ReviewEligible {
		t.Fatalf("delivery fields not persisted: %+v", stored)
	}
}

func TestUpdateCargoStatusSameStatusNoOp(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	if _, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		CargoID:   cargo.ID,
		NewStatus: constants.CargoStatusNewRequest,
		Note:      "ignored",
	}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	var count int64
	if err := f.db.Model(&models.CargoTracking{}).Where("cargo_id = ?", cargo.ID).Count(&count).Error; err != nil {
		t.Fatalf("count tracking failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("tracking rows = %d, want 1", count)
	}
}

func TestUpdateCargoStatusUnknown(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	if _, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		CargoID:   cargo.ID,
		NewStatus: "teleported",
	}); !errors.Is(err, ErrStatusUnknown) {
		t.Fatalf("err = %v, want ErrStatusUnknown", err)
	}
}

func TestUpdateCargoStatusSupplierScope(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	if _, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		CargoID:    cargo.ID,
		NewStatus:  constants.CargoStatusAwaitingPickup,
		SupplierID: f.supplier.ID + 100,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateCargoStatusByTrackingNumber(t *testing.T) {
	f := setupCargoServiceTest(t)
	cargo, err := f.svc.CreateCargo(f.baseInput())
	if err != nil {
		t.Fatalf("create cargo failed: %v", err)
	}

	updated, err := f.svc.UpdateCargoStatus(UpdateStatusInput{
		TrackingNo: cargo.TrackingNo,
		NewStatus:  constants.CargoStatusAwaitingPickup,
		SupplierID: f.supplier.ID,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.ID != cargo.ID {
		t.Fatalf("updated cargo %d, want %d", updated.ID, cargo.ID)
	}
}

func TestStatusLifecycleHelpers(t *testing.T) {
	statuses := AllStatuses()
	if len(statuses) != 10 {
		t.Fatalf("statuses = %d, want 10", len(statuses))
	}
	for _, status := range statuses {
		if !IsKnownStatus(status) {
			t.Fatalf("status %s not recognized", status)
		}
	}
	if IsKnownStatus("teleported") {
		t.Fatalf("unknown status accepted")
	}
	next := NextStatuses(constants.CargoStatusAwaitingDelivery)
	if len(next) != 1 || next[0] != constants.CargoStatusDelivered {
		t.Fatalf("next statuses = %v", next)
	}
	if len(NextStatuses(constants.CargoStatusDelivered)) != 0 {
		t.Fatalf("delivered should be terminal")
	}
}

func TestTrackCacheKey(t *testing.T) {
	if got := TrackCacheKey("CG-20260101-ABC123"); got != "track:CG-20260101-ABC123" {
		t.Fatalf("key = %s, want track:CG-20260101-ABC123", got)
	}
}
