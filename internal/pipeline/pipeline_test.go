package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/scrape"
)

type fakeSource struct {
	name       string
	candidates []scrape.RawCandidate
	err        error
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Scrape(ctx context.Context) ([]scrape.RawCandidate, error) {
	return f.candidates, f.err
}

type memStore struct {
	events  []event.Event
	rejects []string
	keys    map[string]bool
	pruned  int64
}

func newMemStore() *memStore {
	return &memStore{keys: make(map[string]bool)}
}

func (m *memStore) InsertEvent(ctx context.Context, e *event.Event) (bool, error) {
	key := e.IdentityKey()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	e.ID = int64(len(m.events) + 1)
	m.events = append(m.events, *e)
	return true, nil
}

func (m *memStore) InsertReject(ctx context.Context, source, payload, errorMsg string) (bool, error) {
	m.rejects = append(m.rejects, source+": "+errorMsg)
	return true, nil
}

func (m *memStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.pruned, nil
}

func candidate(title, start string) scrape.RawCandidate {
	return scrape.RawCandidate{
		"title":          title,
		"start_datetime": start,
		"venue_name":     "Venue",
	}
}

func TestRun_HappyPath(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "a", candidates: []scrape.RawCandidate{
			candidate("Show One", "2026-03-14T20:00:00"),
			candidate("Show Two", "2026-03-14T22:00:00"),
		}},
		&fakeSource{name: "b", candidates: []scrape.RawCandidate{
			candidate("Show Three", "2026-03-14T23:00:00"),
		}},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", report.Inserted)
	}
	if report.UsedFallback {
		t.Error("fallback used despite live results")
	}
	if report.RunID == "" {
		t.Error("RunID empty")
	}
	for _, e := range st.events {
		if e.DiscoveredAt.IsZero() {
			t.Errorf("event %q missing discovery stamp", e.Title)
		}
	}
}

func TestRun_SourceFailureIsolated(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "broken", err: errors.New("http 503")},
		&fakeSource{name: "healthy", candidates: []scrape.RawCandidate{
			candidate("Survivor", "2026-03-14T21:00:00"),
		}},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, one bad source must not abort the run", err)
	}

	if report.Inserted != 1 {
		t.Errorf("Inserted = %d, want the healthy source's event", report.Inserted)
	}
	if report.Sources[0].Err == "" {
		t.Error("broken source's error not recorded")
	}
	if report.Sources[1].Err != "" {
		t.Errorf("healthy source flagged: %q", report.Sources[1].Err)
	}
}

func TestRun_PartialResultsFromFailingSource(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{
			name:       "flaky",
			candidates: []scrape.RawCandidate{candidate("Partial", "2026-03-14T21:00:00")},
			err:        errors.New("page 2 failed"),
		},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Inserted != 1 {
		t.Errorf("Inserted = %d, want the partial result kept", report.Inserted)
	}
}

func TestRun_RejectsRecorded(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "sloppy", candidates: []scrape.RawCandidate{
			candidate("Good", "2026-03-14T21:00:00"),
			{"title": "No Start"},
			{"start_datetime": "2026-03-14T21:00:00"}, // no title
		}},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.Sources[0].Rejected != 2 {
		t.Errorf("Rejected = %d, want 2", report.Sources[0].Rejected)
	}
	if len(st.rejects) != 2 {
		t.Errorf("recorded rejects = %d, want 2", len(st.rejects))
	}
	if report.Inserted != 1 {
		t.Errorf("Inserted = %d", report.Inserted)
	}
}

func TestRun_CrossSourceDedupe(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "a", candidates: []scrape.RawCandidate{
			candidate("Jazz Night", "2026-03-14T20:00:00"),
		}},
		&fakeSource{name: "b", candidates: []scrape.RawCandidate{
			candidate("JAZZ NIGHT", "2026-03-14T21:30:00"), // same day, same venue
		}},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", report.Inserted)
	}
	if report.Deduped != 1 {
		t.Errorf("Deduped = %d, want 1", report.Deduped)
	}
	if st.events[0].SourcePlatform != "a" {
		t.Errorf("kept source = %q, want first seen", st.events[0].SourcePlatform)
	}
}

func TestRun_FallbackWhenEmpty(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "dead", err: errors.New("down")},
	}

	r := NewRunner(sources, st, WithFallback(true))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if !report.UsedFallback {
		t.Fatal("fallback not used for an empty run")
	}
	if report.Inserted == 0 {
		t.Error("fallback produced no events")
	}
	for _, e := range st.events {
		if e.SourcePlatform != scrape.FallbackPlatform {
			t.Errorf("fallback event has platform %q", e.SourcePlatform)
		}
	}
}

func TestRun_FallbackDisabled(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "dead", err: errors.New("down")},
	}

	r := NewRunner(sources, st, WithFallback(false))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.UsedFallback || report.Inserted != 0 {
		t.Errorf("report = %+v, want empty run with fallback off", report)
	}
}

func TestRun_FallbackNotUsedForPartialResults(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "dead", err: errors.New("down")},
		&fakeSource{name: "alive", candidates: []scrape.RawCandidate{
			candidate("Only Show", "2026-03-14T21:00:00"),
		}},
	}

	r := NewRunner(sources, st, WithFallback(true))
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.UsedFallback {
		t.Error("fallback used although one source produced events")
	}
	if report.Inserted != 1 {
		t.Errorf("Inserted = %d", report.Inserted)
	}
}

func TestRun_NoSources(t *testing.T) {
	r := NewRunner(nil, newMemStore())
	if _, err := r.Run(context.Background()); !errors.Is(err, ErrNoSources) {
		t.Errorf("error = %v, want ErrNoSources", err)
	}
}

func TestRun_SecondRunAllDuplicates(t *testing.T) {
	st := newMemStore()
	sources := []scrape.Source{
		&fakeSource{name: "a", candidates: []scrape.RawCandidate{
			candidate("Repeat Show", "2026-03-14T21:00:00"),
		}},
	}

	r := NewRunner(sources, st, WithFallback(false))
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Inserted != 0 {
		t.Errorf("second run inserted = %d, want 0", report.Inserted)
	}
	if report.Duplicates != 1 {
		t.Errorf("second run duplicates = %d, want 1", report.Duplicates)
	}
}

func TestRun_FixedClock(t *testing.T) {
	st := newMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sources := []scrape.Source{
		&fakeSource{name: "a", candidates: []scrape.RawCandidate{
			candidate("Show", "2026-03-14T21:00:00"),
		}},
	}

	r := NewRunner(sources, st,
		WithFallback(false),
		WithClock(func() time.Time { return now }),
	)
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !st.events[0].DiscoveredAt.Equal(now) {
		t.Errorf("DiscoveredAt = %v, want the injected clock's time", st.events[0].DiscoveredAt)
	}
}
