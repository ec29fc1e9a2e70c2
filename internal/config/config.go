package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"AllocSentinel/internal/strategy"
)

// Config holds all application configuration. The engine section is handed
// to strategy.New, which applies its own defaults and range checks.
type Config struct {
	Engine strategy.Options `yaml:"engine"`
	Data   struct {
		CandlesDir string `yaml:"candles_dir"`
		MacroFile  string `yaml:"macro_file"`
		Warmup     int    `yaml:"warmup"`
	} `yaml:"data"`
	Schedule struct {
		TickCron string `yaml:"tick_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CANDLES_DIR"); v != "" {
		cfg.Data.CandlesDir = v
	}
	if v := os.Getenv("MACRO_FILE"); v != "" {
		cfg.Data.MacroFile = v
	}
	if v := os.Getenv("TICK_CRON"); v != "" {
		cfg.Schedule.TickCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Data.CandlesDir == "" {
		cfg.Data.CandlesDir = "data/candles"
	}
	if cfg.Data.Warmup <= 0 {
		cfg.Data.Warmup = 1
	}
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "0 0 22 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/alloc_sentinel.db"
	}

	return cfg, nil
}

// Validate checks the application-level fields. Engine options are validated
// separately at engine construction.
func (c *Config) Validate() error {
	if len(c.Engine.Universe) == 0 {
		return fmt.Errorf("engine.universe is required")
	}
	if c.Data.CandlesDir == "" {
		return fmt.Errorf("data.candles_dir is required")
	}
	return nil
}
