package models

import (
	"time"

	"gorm.io/gorm"
)

// CargoSupplierPayment is the commission ledger row written once per cargo
// after commissions are applied. Monetary fields are immutable afterwards;
// only Period and PaymentStatus change, via batch operations.
type CargoSupplierPayment struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	SupplierID         uint           `gorm:"index;not null" json:"supplier_id"`
	CargoID            uint           `gorm:"uniqueIndex;not null" json:"cargo_id"`
	Period             *time.Time     `gorm:"index" json:"period,omitempty"` // settlement period start, 1st or 15th at midnight
	Revenue            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"revenue"`
	Profit             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"profit"`
	SupplierCommission Money          `gorm:"type:decimal(20,2);not null;default:0" json:"supplier_commission"`
	CustomerCommission Money          `gorm:"type:decimal(20,2);not null;default:0" json:"customer_commission"`
	Commission         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission"`
	PaymentStatus      string         `gorm:"index;not null;default:pending" json:"payment_status"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CargoSupplierPayment) TableName() string {
	return "cargo_supplier_payments"
}
