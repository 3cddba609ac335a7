package repository

import (
	"errors"
	"time"

	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// CargoMatchFilter selects one cargo by id or tracking number, optionally
// constrained to a supplier.
type CargoMatchFilter struct {
	ID         uint
	TrackingNo string
	SupplierID uint
}

// CargoListFilter cargo list filter.
type CargoListFilter struct {
	UserID     uint
	SupplierID uint
	Status     string
	Page       int
	PageSize   int
}

// StatusCount one row of a per-status aggregation.
type StatusCount struct {
	Status string
	Count  int64
}

// CargoRepository cargo data access interface.
type CargoRepository interface {
	Create(cargo *models.Cargo) error
	GetByID(id uint) (*models.Cargo, error)
	FindOne(filter CargoMatchFilter) (*models.Cargo, error)
	List(filter CargoListFilter) ([]models.Cargo, int64, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	CountByStatusInWindow(supplierID uint, start, end time.Time) ([]StatusCount, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormCargoRepository
}

// GormCargoRepository GORM implementation.
type GormCargoRepository struct {
	db *gorm.DB
}

// NewCargoRepository creates the cargo repository.
func NewCargoRepository(db *gorm.DB) *GormCargoRepository {
	return &GormCargoRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCargoRepository) WithTx(tx *gorm.DB) *GormCargoRepository {
	if tx == nil {
		return r
	}
	return &GormCargoRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormCargoRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create inserts a cargo together with its items.
func (r *GormCargoRepository) Create(cargo *models.Cargo) error {
	return r.db.Create(cargo).Error
}

// GetByID fetches a cargo with items and tracking history.
func (r *GormCargoRepository) GetByID(id uint) (*models.Cargo, error) {
	return r.FindOne(CargoMatchFilter{ID: id})
}

// FindOne fetches one cargo matching the filter, nil when nothing matches.
func (r *GormCargoRepository) FindOne(filter CargoMatchFilter) (*models.Cargo, error) {
	query := r.db.Preload("Items").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		})
	switch {
	case filter.ID > 0:
		query = query.Where("id = ?", filter.ID)
	case filter.TrackingNo != "":
		query = query.Where("tracking_no = ?", filter.TrackingNo)
	default:
		return nil, nil
	}
	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	var cargo models.Cargo
	if err := query.First(&cargo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cargo, nil
}

// List lists cargos by filter.
func (r *GormCargoRepository) List(filter CargoListFilter) ([]models.Cargo, int64, error) {
	query := r.db.Model(&models.Cargo{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var cargos []models.Cargo
	if err := query.Preload("Items").Order("id desc").Find(&cargos).Error; err != nil {
		return nil, 0, err
	}
	return cargos, total, nil
}

// UpdateFields applies a partial update to one cargo row.
func (r *GormCargoRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Cargo{}).Where("id = ?", id).Updates(updates).Error
}

// CountByStatusInWindow aggregates a supplier's cargos per status.
func (r *GormCargoRepository) CountByStatusInWindow(supplierID uint, start, end time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.Model(&models.Cargo{}).
		Select("status, count(*) as count").
		Where("supplier_id = ? AND created_at >= ? AND created_at <= ?", supplierID, start, end).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
