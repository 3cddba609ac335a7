package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyRoundsToTwoPlaces(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("12.345"))
	if m.String() != "12.35" {
		t.Fatalf("money = %s, want 12.35", m.String())
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("7.5"))
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"7.50"` {
		t.Fatalf("marshaled = %s, want \"7.50\"", raw)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"19.99"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if !fromString.Decimal.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("from string = %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`19.99`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if !fromNumber.Decimal.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("from number = %s", fromNumber.String())
	}
}

func TestUintArrayContains(t *testing.T) {
	arr := UintArray{1, 5, 9}
	if !arr.Contains(5) {
		t.Fatalf("should contain 5")
	}
	if arr.Contains(2) {
		t.Fatalf("should not contain 2")
	}
	var empty UintArray
	if empty.Contains(1) {
		t.Fatalf("empty array contains nothing")
	}
}
