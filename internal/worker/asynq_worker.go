package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/provider"
	"github.com/cargomart/internal/queue"
	"github.com/cargomart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer async task consumer.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCargoCreated, c.handleCargoCreated)
	mux.HandleFunc(queue.TaskCargoCreatedSupplier, c.handleCargoCreatedSupplier)
	mux.HandleFunc(queue.TaskCargoStatusUpdated, c.handleCargoStatusUpdated)
	mux.HandleFunc(queue.TaskApplyCommissions, c.handleApplyCommissions)
	mux.HandleFunc(queue.TaskSupplierReview, c.handleSupplierReview)
}

func (c *Consumer) handleCargoCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CargoCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cargo_created_unmarshal_failed", "error", err)
		return err
	}
	if payload.CargoID == 0 || payload.UserID == 0 {
		logger.Debugw("worker_cargo_created_skip_invalid_payload", "cargo_id", payload.CargoID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_cargo_created_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_cargo_created_skip_user_not_found", "user_id", payload.UserID)
		return nil
	}
	message := fmt.Sprintf("Your shipment request was received. Track it with %s.", payload.TrackingNo)
	if err := c.SMSService.Send(ctx, user.Phone, message); err != nil {
		logger.Warnw("worker_cargo_created_sms_failed", "cargo_id", payload.CargoID, "error", err)
	}
	return nil
}

func (c *Consumer) handleCargoCreatedSupplier(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CargoCreatedSupplierPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cargo_created_supplier_unmarshal_failed", "error", err)
		return err
	}
	if payload.SupplierID == 0 {
		logger.Debugw("worker_cargo_created_supplier_skip_invalid_payload", "cargo_id", payload.CargoID)
		return nil
	}
	supplier, err := c.SupplierRepo.GetByID(payload.SupplierID)
	if err != nil {
		logger.Warnw("worker_cargo_created_supplier_fetch_failed", "supplier_id", payload.SupplierID, "error", err)
		return err
	}
	if supplier == nil || supplier.Phone == "" {
		logger.Debugw("worker_cargo_created_supplier_skip_no_receiver", "supplier_id", payload.SupplierID)
		return nil
	}
	message := fmt.Sprintf("New shipment request #%d is waiting for your confirmation.", payload.CargoID)
	if err := c.SMSService.Send(ctx, supplier.Phone, message); err != nil {
		logger.Warnw("worker_cargo_created_supplier_sms_failed", "cargo_id", payload.CargoID, "error", err)
	}
	return nil
}

func (c *Consumer) handleCargoStatusUpdated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CargoStatusUpdatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cargo_status_unmarshal_failed", "error", err)
		return err
	}
	if payload.CargoID == 0 {
		logger.Debugw("worker_cargo_status_skip_invalid_payload", "cargo_id", payload.CargoID)
		return nil
	}
	cargo, err := c.CargoRepo.GetByID(payload.CargoID)
	if err != nil {
		logger.Warnw("worker_cargo_status_fetch_cargo_failed", "cargo_id", payload.CargoID, "error", err)
		return err
	}
	if cargo == nil {
		logger.Debugw("worker_cargo_status_skip_cargo_not_found", "cargo_id", payload.CargoID)
		return nil
	}
	user, err := c.UserRepo.GetByID(cargo.UserID)
	if err != nil {
		logger.Warnw("worker_cargo_status_fetch_user_failed", "user_id", cargo.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_cargo_status_skip_user_not_found", "user_id", cargo.UserID)
		return nil
	}
	status := payload.Status
	if status == "" {
		status = cargo.Status
	}
	message := fmt.Sprintf("Shipment %s is now %s.", cargo.TrackingNo, status)
	if err := c.SMSService.Send(ctx, user.Phone, message); err != nil {
		logger.Warnw("worker_cargo_status_sms_failed", "cargo_id", cargo.ID, "error", err)
	}
	return nil
}

func (c *Consumer) handleApplyCommissions(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.ApplyCommissionsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_apply_commissions_unmarshal_failed", "error", err)
		return err
	}
	if payload.CargoID == 0 {
		logger.Debugw("worker_apply_commissions_skip_invalid_payload", "cargo_id", payload.CargoID)
		return nil
	}
	_, err := c.CommissionService.ApplyCommissions(payload.CargoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_apply_commissions_skip_cargo_not_found", "cargo_id", payload.CargoID)
			return nil
		case errors.Is(err, service.ErrPricingNotFound), errors.Is(err, service.ErrUnsupportedCargoType):
			logger.Warnw("worker_apply_commissions_skip_pricing_gone", "cargo_id", payload.CargoID, "error", err)
			return nil
		default:
			logger.Warnw("worker_apply_commissions_failed", "cargo_id", payload.CargoID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleSupplierReview(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.SupplierReviewPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_supplier_review_unmarshal_failed", "error", err)
		return err
	}
	if payload.CargoID == 0 || payload.UserID == 0 {
		logger.Debugw("worker_supplier_review_skip_invalid_payload", "cargo_id", payload.CargoID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_supplier_review_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	supplier, err := c.SupplierRepo.GetByID(payload.SupplierID)
	if err != nil {
		logger.Warnw("worker_supplier_review_fetch_supplier_failed", "supplier_id", payload.SupplierID, "error", err)
		return err
	}
	if user == nil || supplier == nil {
		logger.Debugw("worker_supplier_review_skip_not_found", "cargo_id", payload.CargoID)
		return nil
	}
	message := fmt.Sprintf("Your shipment was delivered. How was %s? Leave a review in the app.", supplier.Name)
	if err := c.SMSService.Send(ctx, user.Phone, message); err != nil {
		logger.Warnw("worker_supplier_review_sms_failed", "cargo_id", payload.CargoID, "error", err)
	}
	return nil
}
