package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PriceField is one cargo-type entry of a pricing row.
type PriceField struct {
	CargoTypeID            uint   `json:"cargo_type_id"`
	PricingMode            string `json:"pricing_mode"` // per_weight / per_item
	Price                  Money  `json:"price"`
	CommissionRate         Money  `json:"commission_rate"`
	AvailableCourierPickup bool   `json:"available_courier_pickup"`
}

// PriceFieldList is the ordered set of price entries, stored as JSON.
type PriceFieldList []PriceField

// Value implements driver.Valuer.
func (l PriceFieldList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]PriceField{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *PriceFieldList) Scan(value interface{}) error {
	if value == nil {
		*l = PriceFieldList{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Find returns the entry for a cargo type, if present.
func (l PriceFieldList) Find(cargoTypeID uint) (PriceField, bool) {
	for _, field := range l {
		if field.CargoTypeID == cargoTypeID {
			return field, true
		}
	}
	return PriceField{}, false
}

// CargoPricing is a per-supplier, per-method, per-route price list.
// At most one row may exist for a (supplier, method, overlapping route) pair.
type CargoPricing struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	SupplierID             uint           `gorm:"index;not null" json:"supplier_id"`
	CargoMethod            string         `gorm:"index;not null" json:"cargo_method"`
	PriceFields            PriceFieldList `gorm:"type:text;not null" json:"price_fields"`
	SourceLocationIDs      UintArray      `gorm:"type:text;not null" json:"source_location_ids"`
	DestinationLocationIDs UintArray      `gorm:"type:text;not null" json:"destination_location_ids"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CargoPricing) TableName() string {
	return "cargo_pricings"
}

// Covers reports whether the row serves the given route.
func (p CargoPricing) Covers(sourceID, destinationID uint) bool {
	return p.SourceLocationIDs.Contains(sourceID) && p.DestinationLocationIDs.Contains(destinationID)
}
