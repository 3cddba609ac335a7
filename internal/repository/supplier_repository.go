package repository

import (
	"errors"
	"time"

	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository supplier data access interface.
type SupplierRepository interface {
	GetByID(id uint) (*models.Supplier, error)
	GetByTrackingToken(token string) (*models.Supplier, error)
	ListActive() ([]models.Supplier, error)
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	UpdateServicedDestinations(id uint, destinationIDs models.UintArray, now time.Time) error
}

// GormSupplierRepository GORM implementation.
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates the supplier repository.
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// GetByID fetches a supplier by id.
func (r *GormSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// GetByTrackingToken fetches a supplier by its public tracking auth token.
func (r *GormSupplierRepository) GetByTrackingToken(token string) (*models.Supplier, error) {
	if token == "" {
		return nil, nil
	}
	var supplier models.Supplier
	if err := r.db.Where("tracking_auth_token = ?", token).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// ListActive lists active suppliers.
func (r *GormSupplierRepository) ListActive() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.Where("is_active = ?", true).Order("id asc").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Create inserts a supplier.
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// Update saves a supplier.
func (r *GormSupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// UpdateServicedDestinations rewrites the aggregate destination set.
func (r *GormSupplierRepository) UpdateServicedDestinations(id uint, destinationIDs models.UintArray, now time.Time) error {
	return r.db.Model(&models.Supplier{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"serviced_destination_ids": destinationIDs,
			"updated_at":               now,
		}).Error
}
