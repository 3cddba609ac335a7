package models

import (
	"errors"

	"github.com/cargomart/internal/constants"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the bootstrap admin account when no admin exists.
// A blank password skips seeding.
func InitDefaultAdmin(phone, password string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	if password == "" {
		return nil
	}
	if phone == "" {
		phone = "+10000000000"
	}

	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &User{
		Phone:        phone,
		Name:         "Admin",
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
	}
	return DB.Create(admin).Error
}
