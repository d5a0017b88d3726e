package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/morlabs/nightplanner/internal/store"
)

// ErrInvalidDate is returned when the plan date is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("planner: invalid date")

// ErrInvalidProfile wraps profile validation failures.
var ErrInvalidProfile = errors.New("planner: invalid profile")

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// EventStore is the slice of the store the planner needs.
type EventStore interface {
	QueryEvents(ctx context.Context, f store.Filter) (store.QueryResult, error)
}

// Plan is one planning response: the date requested, the ranked picks
// and how many candidates were considered.
type Plan struct {
	Date       string        `json:"date"`
	Candidates int           `json:"candidates"`
	Picks      []ScoredEvent `json:"picks"`
}

// Service ranks stored events for a date against a preference profile.
type Service struct {
	store  EventStore
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService builds a planning service over st.
func NewService(st EventStore, opts ...Option) *Service {
	s := &Service{store: st, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Plan loads the events for date, scores them against profile and
// returns the top picks. An empty candidate set is not an error; the
// caller decides how to present it.
func (s *Service) Plan(ctx context.Context, date string, profile Profile) (*Plan, error) {
	if !dateRe.MatchString(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	res, err := s.store.QueryEvents(ctx, store.Filter{Date: date, Limit: store.MaxQueryLimit})
	if err != nil {
		return nil, fmt.Errorf("planner: load events for %s: %w", date, err)
	}
	if res.Skipped > 0 {
		s.logger.Warn("skipped unreadable event rows while planning",
			"date", date, "skipped", res.Skipped)
	}

	picks := Rank(res.Items, &profile)
	s.logger.Debug("plan built",
		"date", date,
		"candidates", len(res.Items),
		"picks", len(picks),
		"energy", profile.EnergyLevel,
		"home", profile.HomeBase)

	return &Plan{Date: date, Candidates: len(res.Items), Picks: picks}, nil
}
