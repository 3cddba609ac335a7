package models

import (
	"database/sql/driver"
	"encoding/json"
)

// UintArray stores a set of ids as a JSON array column.
type UintArray []uint

// Value implements driver.Valuer.
func (a UintArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]uint{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *UintArray) Scan(value interface{}) error {
	if value == nil {
		*a = UintArray{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, a)
}

// Contains reports whether id is part of the set.
func (a UintArray) Contains(id uint) bool {
	for _, item := range a {
		if item == id {
			return true
		}
	}
	return false
}

// AddressSnapshot is an address copied by value onto a cargo at creation.
// It is a JSON column, never a live reference to the user address row.
type AddressSnapshot struct {
	ContactName    string `json:"contact_name"`
	ContactSurname string `json:"contact_surname"`
	Phone          string `json:"phone"`
	Line           string `json:"line"`
	City           string `json:"city"`
	Country        string `json:"country"`
}

// Value implements driver.Valuer.
func (s AddressSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *AddressSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = AddressSnapshot{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, s)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
