// Package metrics exposes the Prometheus instrumentation for the
// ingestion pipeline and the planning API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsScraped counts raw candidates produced per source, before
	// normalization.
	EventsScraped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nightplanner_events_scraped_total",
		Help: "Raw event candidates fetched, by source.",
	}, []string{"source"})

	// EventsRejected counts candidates dropped during normalization.
	EventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nightplanner_events_rejected_total",
		Help: "Candidates rejected during normalization, by source.",
	}, []string{"source"})

	// EventsDuplicate counts events discarded by identity-key dedupe,
	// in memory or at insert.
	EventsDuplicate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nightplanner_events_duplicate_total",
		Help: "Events discarded as duplicates, by source.",
	}, []string{"source"})

	// EventsInserted counts rows newly persisted.
	EventsInserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nightplanner_events_inserted_total",
		Help: "Events newly inserted into the store, by source.",
	}, []string{"source"})

	// SourceFailures counts scrape runs where a source returned an error.
	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nightplanner_source_failures_total",
		Help: "Scrape attempts that ended in an error, by source.",
	}, []string{"source"})

	// FallbackActivations counts runs that substituted the curated
	// sample set because scraping produced nothing.
	FallbackActivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nightplanner_fallback_activations_total",
		Help: "Pipeline runs that fell back to the curated sample events.",
	})

	// PlansServed counts successful plan responses.
	PlansServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nightplanner_plans_served_total",
		Help: "Plans successfully built and returned.",
	})

	// ScrapeDuration observes wall time of whole pipeline runs.
	ScrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nightplanner_scrape_run_seconds",
		Help:    "Duration of full scrape-and-store pipeline runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
