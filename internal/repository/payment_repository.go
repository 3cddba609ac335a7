package repository

import (
	"errors"
	"time"

	"github.com/cargomart/internal/constants"
	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository supplier-payment ledger access interface.
type PaymentRepository interface {
	Create(payment *models.CargoSupplierPayment) error
	GetByCargoID(cargoID uint) (*models.CargoSupplierPayment, error)
	AssignPeriod(supplierID uint, period time.Time, now time.Time) (int64, error)
	SetPeriodStatus(period time.Time, status string, now time.Time) (int64, error)
	ListBySupplierWindow(supplierID uint, start, end time.Time) ([]models.CargoSupplierPayment, error)
	ListAssignedBySupplierWindow(supplierID uint, start, end time.Time) ([]models.CargoSupplierPayment, error)
}

// GormPaymentRepository GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates the payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment row.
func (r *GormPaymentRepository) Create(payment *models.CargoSupplierPayment) error {
	return r.db.Create(payment).Error
}

// GetByCargoID fetches the payment of one cargo.
func (r *GormPaymentRepository) GetByCargoID(cargoID uint) (*models.CargoSupplierPayment, error) {
	var payment models.CargoSupplierPayment
	if err := r.db.Where("cargo_id = ?", cargoID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// AssignPeriod stamps the period onto every pending, still-unassigned payment
// of the supplier created at or before the period date. The period IS NULL
// filter makes repeated runs a no-op for already-assigned rows.
func (r *GormPaymentRepository) AssignPeriod(supplierID uint, period time.Time, now time.Time) (int64, error) {
	result := r.db.Model(&models.CargoSupplierPayment{}).
		Where("supplier_id = ?", supplierID).
		Where("payment_status = ?", constants.PaymentStatusPending).
		Where("period IS NULL").
		Where("created_at <= ?", period).
		Updates(map[string]interface{}{
			"period":     period,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// SetPeriodStatus bulk-updates the payment status of a whole period.
func (r *GormPaymentRepository) SetPeriodStatus(period time.Time, status string, now time.Time) (int64, error) {
	result := r.db.Model(&models.CargoSupplierPayment{}).
		Where("period = ?", period).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     now,
		})
	return result.RowsAffected, result.Error
}

// ListBySupplierWindow lists a supplier's payments created inside the window.
func (r *GormPaymentRepository) ListBySupplierWindow(supplierID uint, start, end time.Time) ([]models.CargoSupplierPayment, error) {
	var payments []models.CargoSupplierPayment
	err := r.db.Where("supplier_id = ? AND created_at >= ? AND created_at <= ?", supplierID, start, end).
		Order("created_at asc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListAssignedBySupplierWindow lists period-assigned payments whose period
// falls inside the window, oldest period first.
func (r *GormPaymentRepository) ListAssignedBySupplierWindow(supplierID uint, start, end time.Time) ([]models.CargoSupplierPayment, error) {
	var payments []models.CargoSupplierPayment
	err := r.db.Where("supplier_id = ? AND period IS NOT NULL AND period >= ? AND period <= ?", supplierID, start, end).
		Order("period asc, id asc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
