package repository

import (
	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// TrackingRepository append-only status-history access interface.
type TrackingRepository interface {
	Append(entry *models.CargoTracking) error
	ListByCargo(cargoID uint) ([]models.CargoTracking, error)
	WithTx(tx *gorm.DB) *GormTrackingRepository
}

// GormTrackingRepository GORM implementation.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates the tracking repository.
func NewTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormTrackingRepository) WithTx(tx *gorm.DB) *GormTrackingRepository {
	if tx == nil {
		return r
	}
	return &GormTrackingRepository{db: tx}
}

// Append inserts a history entry. Entries are never updated or deleted.
func (r *GormTrackingRepository) Append(entry *models.CargoTracking) error {
	return r.db.Create(entry).Error
}

// ListByCargo lists history entries oldest first.
func (r *GormTrackingRepository) ListByCargo(cargoID uint) ([]models.CargoTracking, error) {
	var entries []models.CargoTracking
	if err := r.db.Where("cargo_id = ?", cargoID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
