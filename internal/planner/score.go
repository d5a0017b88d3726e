package planner

import (
	"fmt"
	"sort"

	"github.com/morlabs/nightplanner/internal/event"
)

const (
	baseScore = 50

	travelWithinBonus = 15
	travelNearBonus   = 5
	travelNearSlack   = 15
	travelFarPenalty  = -10

	energyMatchStrong = 15
	energyMatchWeak   = 5
	energyClashStrong = -15
	energyClashWeak   = -5
	energyHighSeated  = -10
	dinnerBonus       = 10

	crowdVenueBonus     = 10
	crowdCollegePenalty = -10

	windowBonus   = 10
	windowPenalty = -10

	freeBonus  = 8
	cheapBonus = 4
	cheapLimit = 20

	maxPlanSize   = 10
	maxReasons    = 3
	defaultReason = "Matches your preferences"
)

// ScoredEvent pairs an event with its fit score and up to three reasons,
// one per applied adjustment in scoring order, penalties included.
type ScoredEvent struct {
	Event   event.Event `json:"event"`
	Score   int         `json:"score"`
	Reasons []string    `json:"reasons"`
}

// Score rates a single event against a profile. The profile must already
// be validated. Scoring is pure: no clock, no I/O.
func Score(e *event.Event, p *Profile) ScoredEvent {
	score := baseScore
	var reasons []string
	add := func(delta int, reason string) {
		score += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	// Travel.
	hood := ""
	if e.Neighborhood != nil {
		hood = *e.Neighborhood
	}
	minutes, known := TravelMinutes(p.HomeBase, hood)
	switch {
	case minutes <= p.MaxTravelMinutes:
		where := hood
		if !known || where == "" {
			where = "the venue"
		}
		add(travelWithinBonus, fmt.Sprintf("About %d min from %s", minutes, where))
	case minutes <= p.MaxTravelMinutes+travelNearSlack:
		add(travelNearBonus, fmt.Sprintf("A bit of a trek (%d min) but close to your budget", minutes))
	default:
		add(travelFarPenalty, fmt.Sprintf("About %d min past your travel budget", minutes-p.MaxTravelMinutes))
	}

	// Energy alignment.
	text := vibeText(e)
	intense, seated := isIntense(text), isSeated(text)
	switch p.EnergyLevel {
	case EnergyLow:
		if seated {
			add(energyMatchStrong, "Relaxed, seated vibe")
		}
		if intense {
			add(energyClashStrong, "High-intensity for a low-key night")
		}
		if p.WantsDinner && seated && mentionsDinner(text) {
			add(dinnerBonus, "Dinner-friendly venue")
		}
	case EnergyMedium:
		if seated {
			add(energyMatchWeak, "Easygoing atmosphere")
		}
		if intense {
			add(energyClashWeak, "A bit more intense than you asked for")
		}
	case EnergyHigh:
		if intense {
			add(energyMatchStrong, "High-energy dance floor")
		}
		if seated {
			add(energyHighSeated, "Seated show on a dance-floor night")
		}
	}

	// Crowd fit. Only the 30+ preference changes anything.
	if p.CrowdPreference == CrowdThirtyPlus {
		if isThirtyPlusVenue(e.VenueName) {
			add(crowdVenueBonus, "Draws a 30+ crowd")
		}
		if isCollegeLeaning(e.Title) {
			add(crowdCollegePenalty, "Title suggests a younger crowd")
		}
	}

	// Time window, compared lexically on zero-padded HH:MM.
	if p.StartTime != "" && p.EndTime != "" {
		start := e.StartAt.Format("15:04")
		if start >= p.StartTime && start <= p.EndTime {
			add(windowBonus, fmt.Sprintf("Starts at %s, inside your window", start))
		} else {
			add(windowPenalty, fmt.Sprintf("Starts at %s, outside your window", start))
		}
	}

	// Price.
	switch {
	case e.IsFree():
		add(freeBonus, "Free entry")
	case e.PriceMin != nil && *e.PriceMin <= cheapLimit:
		add(cheapBonus, fmt.Sprintf("Budget-friendly (from $%.0f)", *e.PriceMin))
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	if len(reasons) == 0 {
		reasons = []string{defaultReason}
	}
	return ScoredEvent{Event: *e, Score: score, Reasons: reasons}
}

// Rank scores every candidate and returns the top entries, highest score
// first. Ties keep the candidates' incoming order, so callers feeding
// chronologically sorted events get chronological tie-breaks.
func Rank(events []event.Event, p *Profile) []ScoredEvent {
	scored := make([]ScoredEvent, 0, len(events))
	for i := range events {
		scored = append(scored, Score(&events[i], p))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxPlanSize {
		scored = scored[:maxPlanSize]
	}
	return scored
}
