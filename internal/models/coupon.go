package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount rule. Company coupons carry a supplier and only apply to
// cargos shipped with that supplier.
type Coupon struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Code          string         `gorm:"uniqueIndex:idx_coupon_code_title;not null" json:"code"`
	Title         string         `gorm:"uniqueIndex:idx_coupon_code_title;not null" json:"title"`
	Type          string         `gorm:"not null" json:"type"`          // universal / company
	DiscountType  string         `gorm:"not null" json:"discount_type"` // fixed / percentage
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`
	MinWeight     *Money         `gorm:"type:decimal(20,2)" json:"min_weight,omitempty"`
	SupplierID    *uint          `gorm:"index" json:"supplier_id,omitempty"` // required iff type=company
	ExpiresAt     *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
