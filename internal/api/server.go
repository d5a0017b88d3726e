// Package api provides HTTP API server functionality.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morlabs/nightplanner/internal/app"
)

// Server represents the HTTP API server.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux

	// Use case dependencies
	health app.HealthUsecase
	events app.EventsUsecase
	plan   app.PlanUsecase
	stats  app.StatsUsecase

	corsOrigins []string
	metrics     bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithEventsUsecase sets the events use case.
func WithEventsUsecase(events app.EventsUsecase) ServerOption {
	return func(s *Server) { s.events = events }
}

// WithPlanUsecase sets the plan use case.
func WithPlanUsecase(plan app.PlanUsecase) ServerOption {
	return func(s *Server) { s.plan = plan }
}

// WithStatsUsecase sets the stats use case.
func WithStatsUsecase(stats app.StatsUsecase) ServerOption {
	return func(s *Server) { s.stats = stats }
}

// WithCORS allows the given origins to call the API from a browser.
func WithCORS(origins []string) ServerOption {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithMetrics exposes Prometheus metrics on /metrics.
func WithMetrics() ServerOption {
	return func(s *Server) { s.metrics = true }
}

// NewServer creates a new API server with the given dependencies.
func NewServer(addr string, health app.HealthUsecase, opts ...ServerOption) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		mux:    mux,
		health: health,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.corsOrigins) > 0 {
		s.httpServer.Handler = corsMiddleware(s.corsOrigins)(mux)
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	if s.events != nil {
		s.mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	}
	if s.plan != nil {
		s.mux.HandleFunc("POST /api/v1/plan", s.handlePlan)
	}
	if s.stats != nil {
		s.mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	}
	if s.metrics {
		s.mux.Handle("GET /metrics", promhttp.Handler())
	}
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result, err := s.health.Handle(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
