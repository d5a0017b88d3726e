// Package pipeline orchestrates one scrape-normalize-store run across
// all configured sources.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/morlabs/nightplanner/internal/dedupe"
	"github.com/morlabs/nightplanner/internal/event"
	"github.com/morlabs/nightplanner/internal/metrics"
	"github.com/morlabs/nightplanner/internal/normalize"
	"github.com/morlabs/nightplanner/internal/scrape"
)

// ErrNoSources is returned by Run when the runner has nothing to scrape.
var ErrNoSources = errors.New("pipeline: no sources configured")

// EventStore is what the runner needs from persistence.
type EventStore interface {
	InsertEvent(ctx context.Context, e *event.Event) (bool, error)
	InsertReject(ctx context.Context, source, payload, errorMsg string) (bool, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// FallbackProvider supplies the curated sample candidates used when a
// run yields nothing at all.
type FallbackProvider interface {
	Candidates() []scrape.RawCandidate
}

// SourceResult summarizes one source's contribution to a run.
type SourceResult struct {
	Source     string `json:"source"`
	Fetched    int    `json:"fetched"`
	Normalized int    `json:"normalized"`
	Rejected   int    `json:"rejected"`
	Err        string `json:"error,omitempty"`
}

// Report is the outcome of one pipeline run.
type Report struct {
	RunID        string         `json:"run_id"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration"`
	Sources      []SourceResult `json:"sources"`
	Deduped      int            `json:"deduped"`
	Inserted     int            `json:"inserted"`
	Duplicates   int            `json:"duplicates"`
	UsedFallback bool           `json:"used_fallback"`
	Pruned       int64          `json:"pruned"`
}

// Runner drives the full ingestion pass: fetch from every source,
// normalize, dedupe the merged stream, persist, then apply retention.
type Runner struct {
	sources  []scrape.Source
	store    EventStore
	fallback FallbackProvider
	logger   *slog.Logger
	now      func() time.Time

	sourceTimeout  time.Duration
	retention      time.Duration
	enableFallback bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the run logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSourceTimeout bounds each source's fetch. Zero disables the bound.
func WithSourceTimeout(d time.Duration) Option {
	return func(r *Runner) { r.sourceTimeout = d }
}

// WithRetention prunes events older than d after each run. Zero
// disables pruning.
func WithRetention(d time.Duration) Option {
	return func(r *Runner) { r.retention = d }
}

// WithFallback controls whether an empty run substitutes the curated
// sample events.
func WithFallback(enabled bool) Option {
	return func(r *Runner) { r.enableFallback = enabled }
}

// NewRunner builds a runner over the given sources and store.
func NewRunner(sources []scrape.Source, st EventStore, opts ...Option) *Runner {
	r := &Runner{
		sources:        sources,
		store:          st,
		fallback:       scrape.NewFallback(),
		logger:         slog.Default(),
		now:            time.Now,
		sourceTimeout:  30 * time.Second,
		enableFallback: true,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes one full pass. Individual source failures are recorded
// and skipped; Run itself fails only on setup problems or a dead store.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if len(r.sources) == 0 {
		return nil, ErrNoSources
	}

	started := r.now()
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}
	log := r.logger.With("run_id", report.RunID)
	log.Info("pipeline run starting", "sources", len(r.sources))

	var merged []event.Event
	for _, src := range r.sources {
		res, events := r.runSource(ctx, log, src)
		report.Sources = append(report.Sources, res)
		merged = append(merged, events...)
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("pipeline: run aborted: %w", err)
		}
	}

	if len(merged) == 0 && r.enableFallback {
		merged = r.fallbackEvents(ctx, log)
		report.UsedFallback = len(merged) > 0
		if report.UsedFallback {
			metrics.FallbackActivations.Inc()
		}
	}

	kept, discards := dedupe.Deduplicate(merged)
	report.Deduped = len(discards)
	for _, d := range discards {
		metrics.EventsDuplicate.WithLabelValues(d.Event.SourcePlatform).Inc()
	}

	discovered := r.now().UTC()
	for i := range kept {
		e := &kept[i]
		e.DiscoveredAt = discovered
		inserted, err := r.store.InsertEvent(ctx, e)
		if err != nil {
			return report, fmt.Errorf("pipeline: insert %q: %w", e.Title, err)
		}
		if inserted {
			report.Inserted++
			metrics.EventsInserted.WithLabelValues(e.SourcePlatform).Inc()
		} else {
			report.Duplicates++
			metrics.EventsDuplicate.WithLabelValues(e.SourcePlatform).Inc()
		}
	}
	report.Duplicates += report.Deduped

	if r.retention > 0 {
		cutoff := r.now().Add(-r.retention)
		pruned, err := r.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			log.Error("retention sweep failed", "error", err)
		} else {
			report.Pruned = pruned
			if pruned > 0 {
				log.Info("pruned stale events", "count", pruned, "cutoff", cutoff)
			}
		}
	}

	report.Duration = r.now().Sub(started)
	metrics.ScrapeDuration.Observe(report.Duration.Seconds())
	log.Info("pipeline run finished",
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"fallback", report.UsedFallback,
		"duration", report.Duration)
	return report, nil
}

// runSource fetches and normalizes one source. Errors never escape; a
// failed source contributes whatever it produced before failing.
func (r *Runner) runSource(ctx context.Context, log *slog.Logger, src scrape.Source) (SourceResult, []event.Event) {
	name := src.Name()
	res := SourceResult{Source: name}

	fetchCtx := ctx
	if r.sourceTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.sourceTimeout)
		defer cancel()
	}

	raw, err := src.Scrape(fetchCtx)
	if err != nil {
		res.Err = err.Error()
		metrics.SourceFailures.WithLabelValues(name).Inc()
		log.Warn("source scrape failed", "source", name, "error", err, "partial", len(raw))
	}
	res.Fetched = len(raw)
	metrics.EventsScraped.WithLabelValues(name).Add(float64(len(raw)))

	var out []event.Event
	for _, candidate := range raw {
		e, nerr := normalize.Normalize(candidate, name)
		if nerr != nil {
			res.Rejected++
			metrics.EventsRejected.WithLabelValues(name).Inc()
			r.recordReject(ctx, log, name, candidate, nerr)
			continue
		}
		out = append(out, *e)
	}
	res.Normalized = len(out)

	log.Info("source done",
		"source", name,
		"fetched", res.Fetched,
		"normalized", res.Normalized,
		"rejected", res.Rejected)
	return res, out
}

func (r *Runner) recordReject(ctx context.Context, log *slog.Logger, source string, candidate scrape.RawCandidate, cause error) {
	payload := candidate.Payload()
	if _, err := r.store.InsertReject(ctx, source, payload, cause.Error()); err != nil {
		log.Error("failed to record reject", "source", source, "error", err)
	}
}

// fallbackEvents normalizes the curated sample set. Sample candidates
// that fail normalization are a programming error and get logged loudly.
func (r *Runner) fallbackEvents(ctx context.Context, log *slog.Logger) []event.Event {
	if r.fallback == nil {
		return nil
	}
	log.Warn("no events from any source, using curated fallback set")
	var out []event.Event
	for _, candidate := range r.fallback.Candidates() {
		e, err := normalize.Normalize(candidate, scrape.FallbackPlatform)
		if err != nil {
			log.Error("fallback candidate rejected", "error", err)
			r.recordReject(ctx, log, scrape.FallbackPlatform, candidate, err)
			continue
		}
		out = append(out, *e)
	}
	return out
}
