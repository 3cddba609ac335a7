package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier is a cargo carrier company.
type Supplier struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	Name                  string         `gorm:"uniqueIndex;not null" json:"name"`
	Phone                 string         `json:"phone"`
	MinWeight             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_weight"` // minimum shipment weight in kg
	DeliveryEstimationMin int            `gorm:"not null;default:0" json:"delivery_estimation_min"`       // days
	DeliveryEstimationMax int            `gorm:"not null;default:0" json:"delivery_estimation_max"`       // days
	ServicedSourceIDs     UintArray      `gorm:"type:text" json:"serviced_source_ids"`
	ServicedDestinationIDs UintArray     `gorm:"type:text" json:"serviced_destination_ids"` // union of destination sets across pricing rows
	TrackingAuthToken     string         `gorm:"type:varchar(64)" json:"-"`                 // unmasks PII on the public tracking endpoint
	IsActive              bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Supplier) TableName() string {
	return "suppliers"
}
