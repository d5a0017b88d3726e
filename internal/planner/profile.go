// Package planner scores stored events against a caller's preference
// profile and produces a short ranked itinerary with human-readable reasons.
package planner

import (
	"fmt"
	"regexp"
	"strings"
)

// Energy levels, ordered low to high.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Crowd preferences.
const (
	CrowdThirtyPlus   = "30_plus_preferred"
	CrowdMixedOK      = "mixed_ok"
	CrowdNoPreference = "no_preference"
)

// Profile is one planning request's constraints. It is transient and never
// persisted; ranking must be deterministic given the same profile and
// candidate set.
type Profile struct {
	HomeBase         string `json:"home_base"`
	StartTime        string `json:"start_time"` // "HH:MM", inclusive
	EndTime          string `json:"end_time"`   // "HH:MM", inclusive
	MaxTravelMinutes int    `json:"max_travel_minutes"`
	EnergyLevel      string `json:"energy_level"`
	WantsDinner      bool   `json:"wants_dinner"`
	CrowdPreference  string `json:"crowd_preference"`
}

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate normalizes and checks a profile. Zero values get planning
// defaults; malformed bounds are errors rather than silent guesses.
func (p *Profile) Validate() error {
	p.EnergyLevel = strings.ToLower(strings.TrimSpace(p.EnergyLevel))
	switch p.EnergyLevel {
	case "":
		p.EnergyLevel = EnergyMedium
	case EnergyLow, EnergyMedium, EnergyHigh:
	default:
		return fmt.Errorf("invalid energy_level %q", p.EnergyLevel)
	}

	p.CrowdPreference = strings.ToLower(strings.TrimSpace(p.CrowdPreference))
	if p.CrowdPreference == "" {
		p.CrowdPreference = CrowdNoPreference
	}

	if p.MaxTravelMinutes <= 0 {
		p.MaxTravelMinutes = 30
	}

	p.StartTime = strings.TrimSpace(p.StartTime)
	p.EndTime = strings.TrimSpace(p.EndTime)
	if p.StartTime != "" && !hhmmRe.MatchString(p.StartTime) {
		return fmt.Errorf("invalid start_time %q", p.StartTime)
	}
	if p.EndTime != "" && !hhmmRe.MatchString(p.EndTime) {
		return fmt.Errorf("invalid end_time %q", p.EndTime)
	}

	p.HomeBase = strings.TrimSpace(p.HomeBase)
	return nil
}
