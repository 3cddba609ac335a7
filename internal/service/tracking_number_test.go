package service

import (
	"strings"
	"testing"
	"time"
)

func TestTrackingNumberFormat(t *testing.T) {
	gen := NewTrackingNumberGenerator()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	no, err := gen.Next(at)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	parts := strings.Split(no, "-")
	if len(parts) != 3 {
		t.Fatalf("tracking number = %s, want three segments", no)
	}
	if parts[0] != "CG" {
		t.Fatalf("prefix = %s, want CG", parts[0])
	}
	if parts[1] != "20260830" {
		t.Fatalf("date segment = %s, want 20260830", parts[1])
	}
	if len(parts[2]) != 6 {
		t.Fatalf("random segment = %s, want 6 chars", parts[2])
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r) {
			t.Fatalf("random segment contains %q", r)
		}
	}
}

func TestTrackingNumberUniqueness(t *testing.T) {
	gen := NewTrackingNumberGenerator()
	at := time.Now()
	seen := make(map[string]struct{}, 200)
	for i := 0; i < 200; i++ {
		no, err := gen.Next(at)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, dup := seen[no]; dup {
			t.Fatalf("duplicate tracking number %s", no)
		}
		seen[no] = struct{}{}
	}
}
