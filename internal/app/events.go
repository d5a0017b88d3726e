package app

import (
	"context"

	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/store"
)

// Night time windows, keyed by start hour. Daytime starts share the
// early_evening bucket rather than getting a window of their own.
const (
	WindowEarlyEvening = "early_evening" // before 20:00
	WindowPrimeTime    = "prime_time"    // 20:00-22:59
	WindowLateNight    = "late_night"    // 23:00-01:59
	WindowAfterHours   = "after_hours"   // 02:00-05:59
)

// EventsUsecase defines the events query use case.
type EventsUsecase interface {
	Query(ctx context.Context, filter store.Filter) (EventsResult, error)
}

// EventStore defines store operations needed by EventsService.
type EventStore interface {
	QueryEvents(ctx context.Context, filter store.Filter) (store.QueryResult, error)
}

// EventsResult is the query response: events in chronological order plus
// the same events grouped by night window.
type EventsResult struct {
	Items   []event.Event            `json:"items"`
	Windows map[string][]event.Event `json:"windows"`
	Skipped int                      `json:"skipped,omitempty"`
}

// EventsService implements EventsUsecase.
type EventsService struct {
	Store EventStore
}

// Query queries events with the given filter and buckets them into
// night windows by local start hour.
func (s *EventsService) Query(ctx context.Context, filter store.Filter) (EventsResult, error) {
	res, err := s.Store.QueryEvents(ctx, filter)
	if err != nil {
		return EventsResult{}, err
	}

	windows := make(map[string][]event.Event)
	for _, e := range res.Items {
		w := WindowFor(e.StartAt.Hour())
		windows[w] = append(windows[w], e)
	}
	return EventsResult{Items: res.Items, Windows: windows, Skipped: res.Skipped}, nil
}

// WindowFor maps a start hour to its night window.
func WindowFor(hour int) string {
	switch {
	case hour >= 6 && hour < 20:
		return WindowEarlyEvening
	case hour >= 20 && hour < 23:
		return WindowPrimeTime
	case hour == 23 || hour < 2:
		return WindowLateNight
	default:
		return WindowAfterHours
	}
}
