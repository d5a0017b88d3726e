package event

import (
	"testing"
	"time"
)

func TestIdentityKey_NormalizesTitleAndVenue(t *testing.T) {
	start := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)

	a := IdentityKey("  Jazz Night ", start, "Blue Note")
	b := IdentityKey("jazz night", start, "  BLUE NOTE  ")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if want := "jazz night|2026-03-14|blue note"; a != want {
		t.Errorf("key = %q, want %q", a, want)
	}
}

func TestIdentityKey_UsesDateNotTime(t *testing.T) {
	early := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	if IdentityKey("Show", early, "Venue") != IdentityKey("Show", late, "Venue") {
		t.Error("same-day events should share a key regardless of start time")
	}

	nextDay := time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC)
	if IdentityKey("Show", early, "Venue") == IdentityKey("Show", nextDay, "Venue") {
		t.Error("different days must produce different keys")
	}
}

func TestIsFree(t *testing.T) {
	tests := []struct {
		name string
		min  *float64
		max  *float64
		want bool
	}{
		{"both zero", Float64Ptr(0), Float64Ptr(0), true},
		{"unknown", nil, nil, false},
		{"min only", Float64Ptr(0), nil, false},
		{"paid", Float64Ptr(10), Float64Ptr(20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{PriceMin: tt.min, PriceMax: tt.max}
			if got := e.IsFree(); got != tt.want {
				t.Errorf("IsFree() = %v, want %v", got, tt.want)
			}
		})
	}
}
