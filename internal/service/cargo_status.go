package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cargomart/internal/cache"
	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/models"
	"github.com/cargomart/internal/queue"
	"github.com/cargomart/internal/repository"

	"gorm.io/gorm"
)

// TrackCacheKey cache key of the public (masked) tracking view. Shared by the
// tracking handler and the status-change invalidation.
func TrackCacheKey(trackingNo string) string {
	return fmt.Sprintf("track:%s", trackingNo)
}

// cargoStatuses every known lifecycle status.
var cargoStatuses = map[string]struct{}{
	constants.CargoStatusNewRequest:           {},
	constants.CargoStatusAwaitingPickup:       {},
	constants.CargoStatusReceived:             {},
	constants.CargoStatusAwaitingShipment:     {},
	constants.CargoStatusShipped:              {},
	constants.CargoStatusArrivedAtDestination: {},
	constants.CargoStatusAwaitingDelivery:     {},
	constants.CargoStatusDelivered:            {},
	constants.CargoStatusCancelled:            {},
	constants.CargoStatusRejected:             {},
}

// statusFlow the usual forward path, used by clients to suggest the next
// step. Operators may still jump to any status, so the flow is advisory.
var statusFlow = map[string][]string{
	constants.CargoStatusNewRequest:           {constants.CargoStatusAwaitingPickup, constants.CargoStatusRejected, constants.CargoStatusCancelled},
	constants.CargoStatusAwaitingPickup:       {constants.CargoStatusReceived, constants.CargoStatusCancelled},
	constants.CargoStatusReceived:             {constants.CargoStatusAwaitingShipment},
	constants.CargoStatusAwaitingShipment:     {constants.CargoStatusShipped},
	constants.CargoStatusShipped:              {constants.CargoStatusArrivedAtDestination},
	constants.CargoStatusArrivedAtDestination: {constants.CargoStatusAwaitingDelivery},
	constants.CargoStatusAwaitingDelivery:     {constants.CargoStatusDelivered},
	constants.CargoStatusDelivered:            {},
	constants.CargoStatusCancelled:            {},
	constants.CargoStatusRejected:             {},
}

// statusOrder display order of the lifecycle.
var statusOrder = []string{
	constants.CargoStatusNewRequest,
	constants.CargoStatusAwaitingPickup,
	constants.CargoStatusReceived,
	constants.CargoStatusAwaitingShipment,
	constants.CargoStatusShipped,
	constants.CargoStatusArrivedAtDestination,
	constants.CargoStatusAwaitingDelivery,
	constants.CargoStatusDelivered,
	constants.CargoStatusCancelled,
	constants.CargoStatusRejected,
}

// AllStatuses returns every lifecycle status in display order.
func AllStatuses() []string {
	out := make([]string, len(statusOrder))
	copy(out, statusOrder)
	return out
}

// IsKnownStatus reports whether the status belongs to the lifecycle.
func IsKnownStatus(status string) bool {
	_, ok := cargoStatuses[status]
	return ok
}

// NextStatuses returns the suggested follow-up statuses for display.
func NextStatuses(status string) []string {
	next, ok := statusFlow[status]
	if !ok {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// UpdateStatusInput status change request. SupplierID is zero for admins;
// suppliers are confined to their own cargos.
type UpdateStatusInput struct {
	CargoID    uint
	TrackingNo string
	NewStatus  string
	Note       string
	SupplierID uint
}

// UpdateCargoStatus applies a status change, records the history entry in the
// same transaction and pushes the follow-up tasks. Submitting the current
// status is a no-op that writes no history and emits no tasks.
func (s *CargoService) UpdateCargoStatus(input UpdateStatusInput) (*models.Cargo, error) {
	newStatus := strings.ToLower(strings.TrimSpace(input.NewStatus))
	if !IsKnownStatus(newStatus) {
		return nil, ErrStatusUnknown
	}

	cargo, err := s.cargoRepo.FindOne(repository.CargoMatchFilter{
		ID:         input.CargoID,
		TrackingNo: strings.TrimSpace(input.TrackingNo),
		SupplierID: input.SupplierID,
	})
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, ErrNotFound
	}
	if cargo.Status == newStatus {
		return cargo, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	delivered := newStatus == constants.CargoStatusDelivered
	if delivered {
		updates["delivered_at"] = now
		updates["review_eligible"] = true
	}

	err = s.cargoRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.cargoRepo.WithTx(tx).UpdateFields(cargo.ID, updates); err != nil {
			return err
		}
		return s.trackingRepo.WithTx(tx).Append(&models.CargoTracking{
			CargoID: cargo.ID,
			Status:  newStatus,
			Note:    strings.TrimSpace(input.Note),
		})
	})
	if err != nil {
		return nil, err
	}

	cargo.Status = newStatus
	cargo.UpdatedAt = now
	if delivered {
		cargo.DeliveredAt = &now
		cargo.ReviewEligible = true
	}

	if err := cache.Del(context.Background(), TrackCacheKey(cargo.TrackingNo)); err != nil {
		logger.Debugw("track_cache_del_failed", "tracking_no", cargo.TrackingNo, "error", err)
	}

	s.enqueueStatusUpdated(cargo, delivered)
	return cargo, nil
}

func (s *CargoService) enqueueStatusUpdated(cargo *models.Cargo, delivered bool) {
	if err := s.queueClient.EnqueueCargoStatusUpdated(queue.CargoStatusUpdatedPayload{
		CargoID: cargo.ID,
		Status:  cargo.Status,
	}); err != nil {
		logger.Errorw("cargo_status_enqueue_failed", "cargo_id", cargo.ID, "error", err)
	}
	if !delivered {
		return
	}
	if err := s.queueClient.EnqueueApplyCommissions(queue.ApplyCommissionsPayload{CargoID: cargo.ID}); err != nil {
		logger.Errorw("apply_commissions_enqueue_failed", "cargo_id", cargo.ID, "error", err)
	}
	if err := s.queueClient.EnqueueSupplierReview(queue.SupplierReviewPayload{
		CargoID:    cargo.ID,
		UserID:     cargo.UserID,
		SupplierID: cargo.SupplierID,
	}); err != nil {
		logger.Errorw("supplier_review_enqueue_failed", "cargo_id", cargo.ID, "error", err)
	}
}
