package repository

import (
	"errors"

	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// PricingRepository pricing-table data access interface.
type PricingRepository interface {
	GetByID(id uint) (*models.CargoPricing, error)
	ListBySupplier(supplierID uint) ([]models.CargoPricing, error)
	ListBySupplierMethod(supplierID uint, method string) ([]models.CargoPricing, error)
	Create(pricing *models.CargoPricing) error
	Update(pricing *models.CargoPricing) error
	Delete(id uint) error
}

// GormPricingRepository GORM implementation.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates the pricing repository.
func NewPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// GetByID fetches a pricing row by id.
func (r *GormPricingRepository) GetByID(id uint) (*models.CargoPricing, error) {
	var pricing models.CargoPricing
	if err := r.db.First(&pricing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing, nil
}

// ListBySupplier lists all pricing rows of a supplier.
func (r *GormPricingRepository) ListBySupplier(supplierID uint) ([]models.CargoPricing, error) {
	var rows []models.CargoPricing
	if err := r.db.Where("supplier_id = ?", supplierID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySupplierMethod lists a supplier's pricing rows for one cargo method.
// Route sets are JSON columns, so route matching happens in the service layer.
func (r *GormPricingRepository) ListBySupplierMethod(supplierID uint, method string) ([]models.CargoPricing, error) {
	var rows []models.CargoPricing
	if err := r.db.Where("supplier_id = ? AND cargo_method = ?", supplierID, method).
		Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a pricing row.
func (r *GormPricingRepository) Create(pricing *models.CargoPricing) error {
	return r.db.Create(pricing).Error
}

// Update saves a pricing row.
func (r *GormPricingRepository) Update(pricing *models.CargoPricing) error {
	return r.db.Save(pricing).Error
}

// Delete removes a pricing row.
func (r *GormPricingRepository) Delete(id uint) error {
	return r.db.Delete(&models.CargoPricing{}, id).Error
}
