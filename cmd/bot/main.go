package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"AllocSentinel/internal/config"
	"AllocSentinel/internal/feed"
	"AllocSentinel/internal/recorder"
	"AllocSentinel/internal/scheduler"
	"AllocSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AllocSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init engine
	eng, err := strategy.New(cfg.Engine)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	opts := eng.Options()
	log.Printf("[INFO] engine mode: %s, universe: %d assets", opts.Mode, len(opts.Universe))

	// Init data source
	var src feed.Source
	if os.Getenv("USE_MOCK_SOURCE") == "true" {
		src = feed.NewMockSource(opts.Universe, 300, 100, opts.MacroKey, opts.InflationThreshold-1)
	} else {
		src, err = feed.NewFileSource(cfg.Data.CandlesDir, opts.Universe, cfg.Data.MacroFile, opts.MacroKey)
		if err != nil {
			log.Fatalf("[FATAL] init file source: %v", err)
		}
	}
	log.Printf("[INFO] data source: %s (%d snapshots)", src.Name(), src.Len())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runID := uuid.NewString()
	if err := rec.BeginRun(&recorder.RunInfo{
		ID:       runID,
		Mode:     string(opts.Mode),
		Source:   src.Name(),
		Universe: opts.Universe,
		Started:  time.Now(),
	}); err != nil {
		log.Printf("[WARN] record run: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, eng, rec, runID, cfg.Data.Warmup)
	if err := sched.Register(cfg.Schedule.TickCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, evaluating one tick now")
		go sched.RunTickNow()
	}

	log.Println("[INFO] AllocSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AllocSentinel stopped")
}
