package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"AllocSentinel/internal/config"
	"AllocSentinel/internal/feed"
	"AllocSentinel/internal/recorder"
	"AllocSentinel/internal/report"
	"AllocSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	verbose := flag.Bool("v", false, "log every tick")
	noDB := flag.Bool("no-db", false, "skip SQLite recording")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	eng, err := strategy.New(cfg.Engine)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	opts := eng.Options()

	src, err := feed.NewFileSource(cfg.Data.CandlesDir, opts.Universe, cfg.Data.MacroFile, opts.MacroKey)
	if err != nil {
		log.Fatalf("[FATAL] init file source: %v", err)
	}
	log.Printf("[INFO] replaying %d snapshots (%s mode, warm-up %d)", src.Len(), opts.Mode, cfg.Data.Warmup)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if !*noDB && cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	runID := uuid.NewString()
	summary := &report.RunSummary{RunID: runID, Mode: string(opts.Mode), Started: time.Now()}
	if err := rec.BeginRun(&recorder.RunInfo{
		ID:       runID,
		Mode:     string(opts.Mode),
		Source:   src.Name(),
		Universe: opts.Universe,
		Started:  summary.Started,
	}); err != nil {
		log.Printf("[WARN] record run: %v", err)
	}

	for i := cfg.Data.Warmup; i < src.Len(); i++ {
		in, err := src.At(i)
		if err != nil {
			log.Fatalf("[FATAL] read tick %d: %v", i, err)
		}
		alloc, tickErr := eng.Tick(in)
		d := eng.LastDecision()
		summary.Observe(d, alloc, tickErr)

		if *verbose {
			log.Printf("[INFO] %s", report.FormatTick(d, alloc, tickErr))
		}

		tr := &recorder.TickRecord{
			RunID:      runID,
			Time:       d.Time,
			Regime:     string(d.Regime),
			Cross:      d.Cross.String(),
			SafeAsset:  d.SafeAsset,
			Selected:   d.Selected,
			Allocation: alloc,
		}
		if tickErr != nil {
			tr.TickErr = tickErr.Error()
		}
		if err := rec.RecordTick(tr); err != nil {
			log.Printf("[ERROR] record tick: %v", err)
		}
	}

	summary.Finished = time.Now()
	fmt.Fprint(os.Stdout, summary.Format())
}
