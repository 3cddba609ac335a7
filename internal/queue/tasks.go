package queue

import (
	"encoding/json"

	"github.com/cargomart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCargoCreated customer notification after a new shipment request
	TaskCargoCreated = constants.TaskCargoCreated
	// TaskCargoCreatedSupplier supplier notification after a new shipment request
	TaskCargoCreatedSupplier = constants.TaskCargoCreatedSupplier
	// TaskCargoStatusUpdated customer notification on a status change
	TaskCargoStatusUpdated = constants.TaskCargoStatusUpdated
	// TaskApplyCommissions commission settlement after delivery
	TaskApplyCommissions = constants.TaskApplyCommissions
	// TaskSupplierReview review invitation after delivery
	TaskSupplierReview = constants.TaskSupplierReview
)

// CargoCreatedPayload customer notification payload.
type CargoCreatedPayload struct {
	CargoID    uint   `json:"cargo_id"`
	TrackingNo string `json:"tracking_no"`
	UserID     uint   `json:"user_id"`
}

// CargoCreatedSupplierPayload supplier notification payload.
type CargoCreatedSupplierPayload struct {
	CargoID    uint `json:"cargo_id"`
	SupplierID uint `json:"supplier_id"`
}

// CargoStatusUpdatedPayload status change notification payload.
type CargoStatusUpdatedPayload struct {
	CargoID uint   `json:"cargo_id"`
	Status  string `json:"status"`
}

// ApplyCommissionsPayload commission settlement payload.
type ApplyCommissionsPayload struct {
	CargoID uint `json:"cargo_id"`
}

// SupplierReviewPayload review invitation payload.
type SupplierReviewPayload struct {
	CargoID    uint `json:"cargo_id"`
	UserID     uint `json:"user_id"`
	SupplierID uint `json:"supplier_id"`
}

// NewCargoCreatedTask creates the customer notification task.
func NewCargoCreatedTask(payload CargoCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCargoCreated, body), nil
}

// NewCargoCreatedSupplierTask creates the supplier notification task.
func NewCargoCreatedSupplierTask(payload CargoCreatedSupplierPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCargoCreatedSupplier, body), nil
}

// NewCargoStatusUpdatedTask creates the status change notification task.
func NewCargoStatusUpdatedTask(payload CargoStatusUpdatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCargoStatusUpdated, body), nil
}

// NewApplyCommissionsTask creates the commission settlement task.
func NewApplyCommissionsTask(payload ApplyCommissionsPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskApplyCommissions, body), nil
}

// NewSupplierReviewTask creates the review invitation task.
func NewSupplierReviewTask(payload SupplierReviewPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSupplierReview, body), nil
}
