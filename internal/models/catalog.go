package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is an administrative-area lookup entry.
type Location struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Country   string         `gorm:"index" json:"country"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Location) TableName() string {
	return "locations"
}

// CargoType is a catalog entry; entries with children act as grouping nodes
// and cannot be shipped directly.
type CargoType struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CargoType) TableName() string {
	return "cargo_types"
}
