package app

import (
	"context"

	"github.com/morlabs/nightplanner/internal/store"
)

// StatsUsecase defines the interface for ingest statistics.
type StatsUsecase interface {
	GetIngestStats(ctx context.Context) (*StatsResult, error)
}

// StatsResult represents the response for the stats endpoint.
type StatsResult struct {
	TotalEvents      int64               `json:"total_events"`
	TotalRejects     int64               `json:"total_rejects"`
	EventsBySource   []store.SourceCount `json:"events_by_source"`
	LastDiscoveredAt *string             `json:"last_discovered_at,omitempty"`
}

// StatsStore defines the interface for stats data access.
type StatsStore interface {
	GetIngestStats(ctx context.Context) (*store.IngestStats, error)
}

// StatsService implements StatsUsecase.
type StatsService struct {
	store StatsStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// GetIngestStats retrieves current store counters.
func (s *StatsService) GetIngestStats(ctx context.Context) (*StatsResult, error) {
	stats, err := s.store.GetIngestStats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResult{
		TotalEvents:      stats.TotalEvents,
		TotalRejects:     stats.TotalRejects,
		EventsBySource:   stats.EventsBySource,
		LastDiscoveredAt: stats.LastDiscoveredAt,
	}, nil
}
