package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/store"
)

var dateParamRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// handleEvents handles GET /api/v1/events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventsFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := s.events.Query(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", err)
		return
	}

	// Ensure Items is an empty array, not null, for JSON serialization
	if result.Items == nil {
		result.Items = []event.Event{}
	}
	writeJSON(w, http.StatusOK, result)
}

// parseEventsFilter parses query parameters into a store.Filter.
func parseEventsFilter(r *http.Request) (store.Filter, error) {
	var filter store.Filter
	q := r.URL.Query()

	if d := q.Get("date"); d != "" {
		if !dateParamRe.MatchString(d) {
			return filter, fmt.Errorf("invalid date: %s", d)
		}
		filter.Date = d
	}

	if s := q.Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, fmt.Errorf("invalid since: %w", err)
		}
		filter.Since = &t
	}

	if u := q.Get("until"); u != "" {
		t, err := time.Parse(time.RFC3339, u)
		if err != nil {
			return filter, fmt.Errorf("invalid until: %w", err)
		}
		filter.Until = &t
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 {
			return filter, fmt.Errorf("invalid limit: %s", l)
		}
		filter.Limit = limit
	}

	return filter, nil
}
