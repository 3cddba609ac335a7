package repository

import (
	"errors"

	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// LocationRepository location lookup interface.
type LocationRepository interface {
	GetByID(id uint) (*models.Location, error)
	ListByIDs(ids []uint) ([]models.Location, error)
}

// GormLocationRepository GORM implementation.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates the location repository.
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// GetByID fetches a location by id.
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// ListByIDs fetches locations in batch.
func (r *GormLocationRepository) ListByIDs(ids []uint) ([]models.Location, error) {
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	var locations []models.Location
	if err := r.db.Where("id IN ?", ids).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// CargoTypeRepository cargo-type catalog interface.
type CargoTypeRepository interface {
	GetByID(id uint) (*models.CargoType, error)
	HasChildren(id uint) (bool, error)
}

// GormCargoTypeRepository GORM implementation.
type GormCargoTypeRepository struct {
	db *gorm.DB
}

// NewCargoTypeRepository creates the cargo-type repository.
func NewCargoTypeRepository(db *gorm.DB) *GormCargoTypeRepository {
	return &GormCargoTypeRepository{db: db}
}

// GetByID fetches a cargo type by id.
func (r *GormCargoTypeRepository) GetByID(id uint) (*models.CargoType, error) {
	var cargoType models.CargoType
	if err := r.db.First(&cargoType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cargoType, nil
}

// HasChildren reports whether the type is a grouping node.
func (r *GormCargoTypeRepository) HasChildren(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CargoType{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
