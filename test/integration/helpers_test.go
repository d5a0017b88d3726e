//go:build integration

// Package integration provides end-to-end tests for the Night Planner API.
package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/morlabs/nightplanner/internal/api"
	"github.com/morlabs/nightplanner/internal/app"
	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/planner"
	"github.com/morlabs/nightplanner/internal/store"
)

// TestApp holds all dependencies for integration tests.
type TestApp struct {
	Server *httptest.Server
	Store  *store.Store
}

// NewTestApp creates a test application with all dependencies wired up.
func NewTestApp(t *testing.T) *TestApp {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	health := app.HealthService{Version: "integration"}
	events := &app.EventsService{Store: st}
	plans := &app.PlanService{Planner: planner.NewService(st)}
	stats := app.NewStatsService(st)

	server := api.NewServer("127.0.0.1:0", health,
		api.WithEventsUsecase(events),
		api.WithPlanUsecase(plans),
		api.WithStatsUsecase(stats),
	)
	ts := httptest.NewServer(server.Handler())

	t.Cleanup(func() {
		ts.Close()
		st.Close()
	})
	return &TestApp{Server: ts, Store: st}
}

// URL returns the base URL of the test server.
func (a *TestApp) URL() string {
	return a.Server.URL
}

// InsertTestEvent inserts a ready-made event into the store.
func (a *TestApp) InsertTestEvent(t *testing.T, title, venue, neighborhood string, start time.Time) {
	t.Helper()

	e := &event.Event{
		Title:          title,
		StartAt:        start,
		VenueName:      venue,
		Neighborhood:   event.StringPtr(neighborhood),
		City:           event.DefaultCity,
		PriceMin:       event.Float64Ptr(20),
		PriceMax:       event.Float64Ptr(40),
		SourcePlatform: "eventbrite",
		DiscoveredAt:   time.Now().UTC(),
	}
	if _, err := a.Store.InsertEvent(context.Background(), e); err != nil {
		t.Fatalf("failed to insert test event: %v", err)
	}
}
