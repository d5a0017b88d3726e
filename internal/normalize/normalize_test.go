package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/morlabs/nightplanner/internal/scrape"
)

func TestNormalize_MinimalCandidate(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":          "Jazz Night",
		"start_datetime": "2026-03-14T21:00:00",
	}

	e, err := Normalize(raw, "eventbrite")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if e.Title != "Jazz Night" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.VenueName != "TBD" {
		t.Errorf("VenueName = %q, want TBD", e.VenueName)
	}
	if e.City != "New York" {
		t.Errorf("City = %q, want New York", e.City)
	}
	if e.SourcePlatform != "eventbrite" {
		t.Errorf("SourcePlatform = %q", e.SourcePlatform)
	}
	if got := e.StartAt.Format("2006-01-02 15:04"); got != "2026-03-14 21:00" {
		t.Errorf("StartAt = %s", got)
	}
	if !e.DiscoveredAt.IsZero() {
		t.Error("DiscoveredAt should be left zero for the pipeline to stamp")
	}
}

func TestNormalize_MissingTitle(t *testing.T) {
	raw := scrape.RawCandidate{"start_datetime": "2026-03-14T21:00:00"}

	_, err := Normalize(raw, "posh")
	var rej *RejectError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectError, got %v", err)
	}
	if rej.Field != "title" {
		t.Errorf("Field = %q, want title", rej.Field)
	}
	if rej.Source != "posh" {
		t.Errorf("Source = %q, want posh", rej.Source)
	}
}

func TestNormalize_UnparseableStart(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":          "Mystery Party",
		"start_datetime": "next friday maybe",
	}

	_, err := Normalize(raw, "instagram")
	var rej *RejectError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectError, got %v", err)
	}
	if rej.Field != "start_datetime" {
		t.Errorf("Field = %q", rej.Field)
	}
}

func TestNormalize_LegacyKeys(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":    "Warehouse Rave",
		"datetime": "2026-03-14T23:00:00",
		"location": "Basement 299, 299 Meserole St, Bushwick, Brooklyn",
		"price":    "$20-40",
		"tags":     []string{"Techno", " EDM "},
	}

	e, err := Normalize(raw, "house_of_yes")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if e.VenueName != "Basement 299" {
		t.Errorf("VenueName = %q, want leading location segment", e.VenueName)
	}
	if e.Neighborhood == nil || *e.Neighborhood != "Bushwick" {
		t.Errorf("Neighborhood = %v, want Bushwick", e.Neighborhood)
	}
	if e.PriceMin == nil || *e.PriceMin != 20 || e.PriceMax == nil || *e.PriceMax != 40 {
		t.Errorf("prices = %v..%v, want 20..40", e.PriceMin, e.PriceMax)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "techno" || e.Tags[1] != "edm" {
		t.Errorf("Tags = %v, want lowercased trimmed", e.Tags)
	}
}

func TestNormalize_NumericPricesWinOverText(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":          "Showcase",
		"start_datetime": "2026-03-14T20:00:00",
		"price_min":      35.0,
		"price_max":      15.0, // reversed on purpose
		"price":          "$99",
	}

	e, err := Normalize(raw, "shotgun")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if *e.PriceMin != 15 || *e.PriceMax != 35 {
		t.Errorf("prices = %v..%v, want reversed bounds swapped to 15..35", *e.PriceMin, *e.PriceMax)
	}
}

func TestNormalize_EndBeforeStartDegrades(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":          "Late Show",
		"start_datetime": "2026-03-14T22:00:00",
		"end_datetime":   "2026-03-14T20:00:00",
	}

	e, err := Normalize(raw, "slipperroom")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if e.EndAt != nil {
		t.Errorf("EndAt = %v, want nil for inverted range", e.EndAt)
	}
}

func TestNormalize_ExplicitFieldsOverrideDefaults(t *testing.T) {
	raw := scrape.RawCandidate{
		"title":          "Rooftop Party",
		"start_datetime": "2026-07-04T19:00:00",
		"venue_name":     "Westlight",
		"neighborhood":   "Williamsburg",
		"city":           "Brooklyn",
		"url":            "https://example.com/rooftop",
		"raw_tags":       []any{"rooftop", "views"},
	}

	e, err := Normalize(raw, "posh")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if e.VenueName != "Westlight" || e.City != "Brooklyn" {
		t.Errorf("venue/city = %q/%q", e.VenueName, e.City)
	}
	if e.Neighborhood == nil || *e.Neighborhood != "Williamsburg" {
		t.Errorf("Neighborhood = %v", e.Neighborhood)
	}
	if e.URL == nil || *e.URL != "https://example.com/rooftop" {
		t.Errorf("URL = %v", e.URL)
	}
	if len(e.Tags) != 2 {
		t.Errorf("Tags = %v, want []any accepted", e.Tags)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in       string
		wantErr  bool
		wantWall string // local wall clock, "2006-01-02 15:04:05"
	}{
		{"2026-03-14T21:00:00", false, "2026-03-14 21:00:00"},
		{"2026-03-14T21:00", false, "2026-03-14 21:00:00"},
		{"2026-03-14 21:00:00", false, "2026-03-14 21:00:00"},
		{"2026-03-14", false, "2026-03-14 00:00:00"},
		{"2026-03-14T21:00:00Z", false, ""},
		{"2026-03-14T21:00:00-05:00", false, ""},
		{"garbage", true, ""},
		{"", true, ""},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantWall != "" {
			if wall := got.Format("2006-01-02 15:04:05"); wall != tt.wantWall {
				t.Errorf("ParseTimestamp(%q) wall = %s, want %s", tt.in, wall, tt.wantWall)
			}
		}
	}
}

func TestParseTimestamp_ZuluIsUTC(t *testing.T) {
	got, err := ParseTimestamp("2026-03-14T21:00:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		wantMin float64
		wantMax float64
		wantNil bool
	}{
		{"", 0, 0, false},
		{"Free", 0, 0, false},
		{"FREE ENTRY", 0, 0, false},
		{"$25", 25, 25, false},
		{"$20-40", 20, 40, false},
		{"$40-20", 20, 40, false},
		{"From $17.50", 17.5, 17.5, false},
		{"Varies", 0, 0, true},
	}
	for _, tt := range tests {
		min, max := ParsePrice(tt.in)
		if tt.wantNil {
			if min != nil || max != nil {
				t.Errorf("ParsePrice(%q) = %v..%v, want nil bounds", tt.in, min, max)
			}
			continue
		}
		if min == nil || max == nil {
			t.Errorf("ParsePrice(%q) = nil bounds", tt.in)
			continue
		}
		if *min != tt.wantMin || *max != tt.wantMax {
			t.Errorf("ParsePrice(%q) = %v..%v, want %v..%v", tt.in, *min, *max, tt.wantMin, tt.wantMax)
		}
	}
}
