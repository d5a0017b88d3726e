// Package main provides the scraping daemon for Night Planner. It runs
// the ingestion pipeline once or on an interval, against the same
// database the API server reads.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/morlabs/nightplanner/internal/config"
	"github.com/morlabs/nightplanner/internal/pipeline"
	"github.com/morlabs/nightplanner/internal/scrape"
	"github.com/morlabs/nightplanner/internal/store"
	"github.com/morlabs/nightplanner/internal/version"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	cfg = config.ApplyEnvOverrides(cfg)

	once := flag.Bool("once", false, "run one pipeline pass and exit")
	interval := flag.Duration("interval", time.Duration(cfg.ScrapeIntervalMin)*time.Minute,
		"delay between pipeline passes")
	dbFlag := flag.String("db", "", "sqlite database path (default: data dir)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dbPath := *dbFlag
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
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

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutdown signal received")
		cancel()
	}()

	sources := scrape.DefaultSources(scrape.NewHTTPClient(20 * time.Second))
	runner := pipeline.NewRunner(sources, db,
		pipeline.WithLogger(logger),
		pipeline.WithSourceTimeout(time.Duration(cfg.SourceTimeoutSec)*time.Second),
		pipeline.WithRetention(time.Duration(cfg.RetentionDays)*24*time.Hour),
		pipeline.WithFallback(cfg.EnableFallback),
	)

	logger.Info("scrape daemon starting",
		"version", version.String(),
		"db", dbPath,
		"once", *once,
		"interval", *interval)

	if err := runOnce(ctx, db, runner, logger); err != nil {
		if *once {
			log.Fatalf("Pipeline run failed: %v", err)
		}
		logger.Error("pipeline run failed", "error", err)
	}
	if *once {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("scrape daemon stopped")
			return
		case <-ticker.C:
			if err := runOnce(ctx, db, runner, logger); err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("pipeline run failed", "error", err)
			}
		}
	}
}

// runOnce executes one pipeline pass and an opportunistic vacuum.
func runOnce(ctx context.Context, db *store.Store, runner *pipeline.Runner, logger *slog.Logger) error {
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, src := range report.Sources {
		if src.Err != "" {
			logger.Warn("source had errors", "source", src.Source, "error", src.Err)
		}
	}
	if vacuumed, err := db.VacuumIfNeeded(ctx); err != nil {
		logger.Warn("vacuum failed", "error", err)
	} else if vacuumed {
		logger.Info("database vacuumed")
	}
	return nil
}
