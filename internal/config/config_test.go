package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.CandlesDir != "data/candles" {
		t.Errorf("candles_dir = %q, want default", cfg.Data.CandlesDir)
	}
	if cfg.Data.Warmup != 1 {
		t.Errorf("warmup = %d, want 1", cfg.Data.Warmup)
	}
	if cfg.Schedule.TickCron != "0 0 22 * * 1-5" {
		t.Errorf("tick_cron = %q, want default", cfg.Schedule.TickCron)
	}
	if cfg.Database.SQLitePath != "data/alloc_sentinel.db" {
		t.Errorf("sqlite_path = %q, want default", cfg.Database.SQLitePath)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	body := `
engine:
  mode: rotation
  universe: [TLT, BIL, HYG]
  benchmark: HYG
data:
  candles_dir: /tmp/candles
  warmup: 40
schedule:
  tick_cron: "0 30 21 * * 1-5"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CANDLES_DIR", "/data/override")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.CandlesDir != "/data/override" {
		t.Errorf("env override lost: candles_dir = %q", cfg.Data.CandlesDir)
	}
	if cfg.Data.Warmup != 40 {
		t.Errorf("warmup = %d, want 40", cfg.Data.Warmup)
	}
	if cfg.Schedule.TickCron != "0 30 21 * * 1-5" {
		t.Errorf("tick_cron = %q", cfg.Schedule.TickCron)
	}
	if cfg.Engine.Benchmark != "HYG" || len(cfg.Engine.Universe) != 3 {
		t.Errorf("engine section not parsed: %+v", cfg.Engine)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	cfg.Engine.Universe = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail without a universe")
	}
}
