package models

import (
	"time"

	"gorm.io/gorm"
)

// Cargo is a shipment order. Status and delivery-derived fields mutate only
// through the status lifecycle; fee fields are fixed at creation.
type Cargo struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	TrackingNo            string          `gorm:"uniqueIndex;not null" json:"tracking_no"`
	UserID                uint            `gorm:"index;not null" json:"user_id"`
	SupplierID            uint            `gorm:"index;not null" json:"supplier_id"`
	Status                string          `gorm:"index;not null" json:"status"`
	CargoMethod           string          `gorm:"not null" json:"cargo_method"`
	SourceLocationID      uint            `gorm:"index;not null" json:"source_location_id"`
	DestinationLocationID uint            `gorm:"index;not null" json:"destination_location_id"`
	PickupAddress         AddressSnapshot `gorm:"type:text" json:"pickup_address"`
	DeliveryAddress       AddressSnapshot `gorm:"type:text" json:"delivery_address"`
	TotalWeight           Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_weight"`
	LineCount             int             `gorm:"not null;default:0" json:"line_count"`
	CouponCode            string          `gorm:"index" json:"coupon_code,omitempty"`
	Fee                   Money           `gorm:"type:decimal(20,2);not null;default:0" json:"fee"`         // carrier goods fee after discount
	ServiceFee            Money           `gorm:"type:decimal(20,2);not null;default:0" json:"service_fee"` // platform fee
	TotalFee              Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_fee"`
	EstimatedDeliveryDate time.Time       `json:"estimated_delivery_date"`
	DeliveredAt           *time.Time      `gorm:"index" json:"delivered_at,omitempty"`
	ReviewEligible        bool            `gorm:"not null;default:false" json:"review_eligible"`
	Note                  string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt             time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`

	Items    []CargoItem     `gorm:"foreignKey:CargoID" json:"items,omitempty"`
	Tracking []CargoTracking `gorm:"foreignKey:CargoID" json:"tracking,omitempty"`
}

// TableName sets the table name.
func (Cargo) TableName() string {
	return "cargos"
}

// CargoItem is one line of a shipment.
type CargoItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CargoID     uint      `gorm:"index;not null" json:"cargo_id"`
	CargoTypeID uint      `gorm:"not null" json:"cargo_type_id"`
	Weight      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"weight"`
	Qty         int       `gorm:"not null;default:0" json:"qty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the table name.
func (CargoItem) TableName() string {
	return "cargo_items"
}

// CargoTracking is an append-only status history entry. Rows are inserted at
// creation and on every accepted status change, never mutated or deleted.
type CargoTracking struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CargoID   uint      `gorm:"index;not null" json:"cargo_id"`
	Status    string    `gorm:"not null" json:"status"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (CargoTracking) TableName() string {
	return "cargo_trackings"
}
