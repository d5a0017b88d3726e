package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/morlabs/nightplanner/internal/app"
	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/planner"
	"github.com/morlabs/nightplanner/internal/store"
)

type stubEvents struct {
	result app.EventsResult
	err    error
	filter store.Filter
}

func (s *stubEvents) Query(ctx context.Context, filter store.Filter) (app.EventsResult, error) {
	s.filter = filter
	return s.result, s.err
}

type stubPlan struct {
	plan *planner.Plan
	err  error
}

func (s *stubPlan) BuildPlan(ctx context.Context, date string, profile planner.Profile) (*planner.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.plan != nil {
		return s.plan, nil
	}
	return &planner.Plan{Date: date}, nil
}

type stubStats struct{}

func (stubStats) GetIngestStats(ctx context.Context) (*app.StatsResult, error) {
	return &app.StatsResult{TotalEvents: 7}, nil
}

func newTestServer(t *testing.T, opts ...ServerOption) *httptest.Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", app.HealthService{Version: "test"}, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestEventsEndpoint(t *testing.T) {
	stub := &stubEvents{result: app.EventsResult{
		Items: []event.Event{{
			Title:     "Jazz Night",
			StartAt:   time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC),
			VenueName: "Blue Note",
		}},
	}}
	ts := newTestServer(t, WithEventsUsecase(stub))

	resp, err := http.Get(ts.URL + "/api/v1/events?date=2026-03-14&limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if stub.filter.Date != "2026-03-14" || stub.filter.Limit != 5 {
		t.Errorf("filter = %+v", stub.filter)
	}

	var body app.EventsResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Items) != 1 || body.Items[0].Title != "Jazz Night" {
		t.Errorf("items = %v", body.Items)
	}
}

func TestEventsEndpoint_BadParams(t *testing.T) {
	ts := newTestServer(t, WithEventsUsecase(&stubEvents{}))

	for _, q := range []string{"?date=03/14/2026", "?since=yesterday", "?limit=0", "?limit=x"} {
		resp, err := http.Get(ts.URL + "/api/v1/events" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestEventsEndpoint_EmptyArrayNotNull(t *testing.T) {
	ts := newTestServer(t, WithEventsUsecase(&stubEvents{}))

	resp, err := http.Get(ts.URL + "/api/v1/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["items"]) != "[]" {
		t.Errorf("items = %s, want []", raw["items"])
	}
}

func TestPlanEndpoint(t *testing.T) {
	stub := &stubPlan{plan: &planner.Plan{
		Date:       "2026-03-14",
		Candidates: 2,
		Picks: []planner.ScoredEvent{
			{Score: 90, Reasons: []string{"Free entry"}},
			{Score: 70, Reasons: []string{"Matches your preferences"}},
		},
	}}
	ts := newTestServer(t, WithPlanUsecase(stub))

	body := `{"date":"2026-03-14","profile":{"home_base":"Harlem","energy_level":"low"}}`
	resp, err := http.Post(ts.URL+"/api/v1/plan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got planner.Plan
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Candidates != 2 || len(got.Picks) != 2 {
		t.Errorf("plan = %+v", got)
	}
}

func TestPlanEndpoint_NoEventsIs404(t *testing.T) {
	stub := &stubPlan{plan: &planner.Plan{Date: "2026-03-15", Candidates: 0}}
	ts := newTestServer(t, WithPlanUsecase(stub))

	body := `{"date":"2026-03-15","profile":{}}`
	resp, err := http.Post(ts.URL+"/api/v1/plan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a date with no events", resp.StatusCode)
	}
}

func TestPlanEndpoint_BadRequests(t *testing.T) {
	ts := newTestServer(t, WithPlanUsecase(&stubPlan{err: planner.ErrInvalidDate}))

	// Malformed body.
	resp, err := http.Post(ts.URL+"/api/v1/plan", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d", resp.StatusCode)
	}

	// Planner-rejected date.
	resp, err = http.Post(ts.URL+"/api/v1/plan", "application/json", strings.NewReader(`{"date":"bad"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid date: status = %d", resp.StatusCode)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t, WithStatsUsecase(stubStats{}))

	resp, err := http.Get(ts.URL + "/api/v1/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got app.StatsResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.TotalEvents != 7 {
		t.Errorf("TotalEvents = %d", got.TotalEvents)
	}
}

func TestUnconfiguredRoutesAre404(t *testing.T) {
	ts := newTestServer(t) // health only

	for _, path := range []string{"/api/v1/events", "/api/v1/stats"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	stub := &stubEvents{}
	ts := newTestServer(t, WithEventsUsecase(stub), WithCORS([]string{"https://app.example.com"}))

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/events", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q", got)
	}

	// Unknown origin preflight is refused.
	req, _ = http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/events", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("unknown-origin preflight status = %d", resp.StatusCode)
	}
}
