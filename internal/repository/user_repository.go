package repository

import (
	"errors"

	"github.com/cargomart/internal/models"

	"gorm.io/gorm"
)

// UserRepository user data access interface.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Create(user *models.User) error
}

// GormUserRepository GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID fetches a user by id.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByPhone fetches a user by phone number.
func (r *GormUserRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// AddressRepository user address data access interface.
type AddressRepository interface {
	GetByID(id uint) (*models.UserAddress, error)
	ListByUser(userID uint) ([]models.UserAddress, error)
	Create(address *models.UserAddress) error
}

// GormAddressRepository GORM implementation.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates the address repository.
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// GetByID fetches an address by id.
func (r *GormAddressRepository) GetByID(id uint) (*models.UserAddress, error) {
	var address models.UserAddress
	if err := r.db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ListByUser lists a user's addresses.
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Create inserts an address.
func (r *GormAddressRepository) Create(address *models.UserAddress) error {
	return r.db.Create(address).Error
}
