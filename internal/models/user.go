package models

import (
	"time"

	"gorm.io/gorm"
)

// User account; customers own cargos and addresses, suppliers and admins
// authenticate with the same table and a role claim.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Phone        string         `gorm:"uniqueIndex;not null" json:"phone"`
	Name         string         `gorm:"not null" json:"name"`
	Surname      string         `json:"surname"`
	PasswordHash string         `gorm:"type:varchar(200);not null" json:"-"`
	Role         string         `gorm:"not null;default:customer" json:"role"`
	SupplierID   *uint          `gorm:"index" json:"supplier_id,omitempty"` // set for supplier accounts
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// UserAddress is a saved pickup or delivery address owned by a user.
type UserAddress struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	ContactName    string         `gorm:"not null" json:"contact_name"`
	ContactSurname string         `json:"contact_surname"`
	Phone          string         `gorm:"not null" json:"phone"`
	Line           string         `gorm:"type:text;not null" json:"line"`
	City           string         `json:"city"`
	Country        string         `json:"country"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (UserAddress) TableName() string {
	return "user_addresses"
}

// Snapshot copies the address by value for embedding into a cargo.
func (a UserAddress) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		ContactName:    a.ContactName,
		ContactSurname: a.ContactSurname,
		Phone:          a.Phone,
		Line:           a.Line,
		City:           a.City,
		Country:        a.Country,
	}
}
