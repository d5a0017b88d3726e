// Package main provides the entry point for the Night Planner server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/morlabs/nightplanner/internal/api"
	"github.com/morlabs/nightplanner/internal/app"
	"github.com/morlabs/nightplanner/internal/appinfo"
	"github.com/morlabs/nightplanner/internal/config"
	"github.com/morlabs/nightplanner/internal/pipeline"
	"github.com/morlabs/nightplanner/internal/planner"
	"github.com/morlabs/nightplanner/internal/scrape"
	"github.com/morlabs/nightplanner/internal/store"
	"github.com/morlabs/nightplanner/internal/version"
)

func main() {
	// 1. Load configuration, persisting defaults on first run
	// (corrupt config falls back to defaults with warning)
	cfg, err := config.EnsureConfig()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	cfg = config.ApplyEnvOverrides(cfg)

	// 2. Parse flags (can override config)
	port := flag.Int("port", cfg.Port, "HTTP server port")
	scrapeOnStart := flag.Bool("scrape-on-start", false, "run one scrape pass before serving")
	flag.Parse()

	// 3. Open SQLite store
	dbPath := cfg.DatabasePath
	if dbPath == "" {
		if _, err := config.EnsureDataDir(); err != nil {
			log.Fatalf("Failed to ensure data directory: %v", err)
		}
		dbPath, err = config.DatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Optional initial scrape pass
	if *scrapeOnStart {
		sources := scrape.DefaultSources(scrape.NewHTTPClient(20 * time.Second))
		runner := pipeline.NewRunner(sources, db,
			pipeline.WithSourceTimeout(time.Duration(cfg.SourceTimeoutSec)*time.Second),
			pipeline.WithRetention(time.Duration(cfg.RetentionDays)*24*time.Hour),
			pipeline.WithFallback(cfg.EnableFallback),
		)
		if report, err := runner.Run(ctx); err != nil {
			log.Printf("Initial scrape failed: %v", err)
		} else {
			log.Printf("Initial scrape: %d inserted, %d duplicates", report.Inserted, report.Duplicates)
		}
	}

	// 5. Build use cases and server
	health := app.HealthService{Version: version.String()}
	eventsService := &app.EventsService{Store: db}
	planService := &app.PlanService{Planner: planner.NewService(db)}
	statsService := app.NewStatsService(db)

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	serverOpts := []api.ServerOption{
		api.WithEventsUsecase(eventsService),
		api.WithPlanUsecase(planService),
		api.WithStatsUsecase(statsService),
		api.WithMetrics(),
	}
	if len(cfg.CORSOrigins) > 0 {
		serverOpts = append(serverOpts, api.WithCORS(cfg.CORSOrigins))
	}
	server := api.NewServer(addr, health, serverOpts...)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting %s v%s on %s", appinfo.AppName, version.String(), addr)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-done:
		log.Println("Shutting down...")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
