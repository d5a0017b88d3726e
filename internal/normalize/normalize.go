// Package normalize maps raw scraped candidates into canonical events.
// Records that cannot be shaped are rejected with a reason; rejection is an
// expected outcome, counted by the pipeline, never an abort.
package normalize

import (
	"fmt"
	"strings"

	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/scrape"
)

// RejectError describes why a raw candidate was rejected. It carries the
// originating source and field so the pipeline can record the failure.
type RejectError struct {
	Source string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *RejectError) Error() string {
	return fmt.Sprintf("reject %s record: %s (%s)", e.Source, e.Reason, e.Field)
}

func reject(source, field, reason string) *RejectError {
	return &RejectError{Source: source, Field: field, Reason: reason}
}

// Normalize shapes a raw candidate from the named source into an Event.
// Required after default-filling: title, a parseable start timestamp, and a
// source platform. The venue defaults to the TBD sentinel, the city to the
// fixed locale, and prices degrade to unknown rather than being guessed.
//
// DiscoveredAt is left zero; the pipeline stamps it just before insertion.
func Normalize(raw scrape.RawCandidate, source string) (*event.Event, error) {
	title := strings.TrimSpace(raw.String("title"))
	if title == "" {
		return nil, reject(source, "title", "missing title")
	}

	startText := strings.TrimSpace(raw.String("start_datetime"))
	if startText == "" {
		// Legacy adapters emit "datetime".
		startText = strings.TrimSpace(raw.String("datetime"))
	}
	if startText == "" {
		return nil, reject(source, "start_datetime", "missing start timestamp")
	}
	startAt, err := ParseTimestamp(startText)
	if err != nil {
		return nil, reject(source, "start_datetime", fmt.Sprintf("unparseable start timestamp %q", startText))
	}

	platform := strings.TrimSpace(raw.String("source_platform"))
	if platform == "" {
		platform = strings.TrimSpace(source)
	}
	if platform == "" {
		return nil, reject(source, "source_platform", "missing source platform")
	}

	e := &event.Event{
		Title:          title,
		Description:    strings.TrimSpace(raw.String("description")),
		StartAt:        startAt,
		VenueName:      venueFrom(raw),
		City:           event.DefaultCity,
		SourcePlatform: platform,
	}

	if city := strings.TrimSpace(raw.String("city")); city != "" {
		e.City = city
	}

	if endText := strings.TrimSpace(raw.String("end_datetime")); endText != "" {
		if endAt, err := ParseTimestamp(endText); err == nil && !endAt.Before(startAt) {
			e.EndAt = &endAt
		}
		// An unparseable or inverted end time degrades to unknown; only
		// the start drives ordering and bucketing.
	}

	if hood := strings.TrimSpace(raw.String("neighborhood")); hood != "" {
		e.Neighborhood = event.StringPtr(hood)
	} else if loc := raw.String("location"); loc != "" {
		if extracted := scrape.ExtractNeighborhood(loc); extracted != "" {
			e.Neighborhood = event.StringPtr(extracted)
		}
	}

	if url := strings.TrimSpace(raw.String("url")); url != "" {
		e.URL = event.StringPtr(url)
	}

	e.PriceMin, e.PriceMax = pricesFrom(raw)
	e.Tags = tagsFrom(raw)

	return e, nil
}

// venueFrom resolves the venue name: the explicit field first, then the
// leading segment of a legacy location line ("Venue, street, city"), then
// the TBD sentinel.
func venueFrom(raw scrape.RawCandidate) string {
	if v := strings.TrimSpace(raw.String("venue_name")); v != "" {
		return v
	}
	if loc := strings.TrimSpace(raw.String("location")); loc != "" {
		venue, _, _ := strings.Cut(loc, ",")
		if venue = strings.TrimSpace(venue); venue != "" {
			return venue
		}
	}
	return event.VenueTBD
}

// pricesFrom resolves the price bounds: explicit numeric fields win, then
// the price text parser. Negative bounds are dropped, reversed bounds are
// swapped to keep max >= min.
func pricesFrom(raw scrape.RawCandidate) (*float64, *float64) {
	min, minOK := raw.Float("price_min")
	max, maxOK := raw.Float("price_max")
	if minOK && !maxOK {
		max, maxOK = min, true
	}
	if minOK && maxOK {
		if min < 0 || max < 0 {
			return nil, nil
		}
		if max < min {
			min, max = max, min
		}
		return event.Float64Ptr(min), event.Float64Ptr(max)
	}
	return ParsePrice(raw.String("price"))
}

// tagsFrom lower-cases tag tokens so later keyword matching is
// case-insensitive. Order is kept for display priority.
func tagsFrom(raw scrape.RawCandidate) []string {
	tokens := raw.Strings("raw_tags")
	if tokens == nil {
		tokens = raw.Strings("tags")
	}
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
