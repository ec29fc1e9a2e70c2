package strategy

import (
	"errors"
	"testing"

	"AllocSentinel/internal/model"
)

func TestNew_AppliesDefaults(t *testing.T) {
	eng, err := New(Options{Mode: ModeTrend, Universe: []string{"BTC"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	o := eng.Options()

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"mom_long", o.MomLong, 125},
		{"mom_short", o.MomShort, 15},
		{"short_weight", o.ShortWeight, 0.15},
		{"score_vwap_length", o.ScoreVWAPLength, 5},
		{"base_allocation", o.BaseAllocation, 0.3},
		{"top_k", o.TopK, 3},
		{"risk_off_cooldown", o.RiskOffCooldown, 3},
		{"trigger_kind", o.TriggerKind, TriggerEMA},
		{"trigger_length", o.TriggerLength, 30},
		{"macro_key", o.MacroKey, "median_cpi"},
		{"inflation_threshold", o.InflationThreshold, 3.0},
		{"fast_length", o.FastLength, 3},
		{"slow_length", o.SlowLength, 5},
		{"confirm_bars", o.ConfirmBars, 3},
		{"stop_pct", o.StopPct, 0.02},
		{"trail_pct", o.TrailPct, 0.01},
		{"take_profit_pct", o.TakeProfitPct, 0.5},
		{"stop_cooldown", o.StopCooldown, 10},
		{"take_profit_cooldown", o.TakeProfitCooldown, 5},
		{"max_gross", o.MaxGross, 1.0},
		{"interval", o.Interval, model.Interval1Day},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	valid := rotationOptions()

	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{"empty universe", func(o *Options) { o.Universe = nil }},
		{"duplicate universe entries", func(o *Options) { o.Universe = append(o.Universe, o.Universe[0]) }},
		{"unknown mode", func(o *Options) { o.Mode = "banana" }},
		{"base allocation above 1", func(o *Options) { o.BaseAllocation = 1.5 }},
		{"negative cooldown", func(o *Options) { o.RiskOffCooldown = -1 }},
		{"mom_short at mom_long", func(o *Options) { o.MomShort = o.MomLong }},
		{"missing benchmark", func(o *Options) { o.Benchmark = "" }},
		{"missing defensive asset", func(o *Options) { o.DefensiveAsset = "" }},
		{"no momentum assets", func(o *Options) { o.MomentumAssets = nil }},
		{"no safe pool", func(o *Options) { o.SafeAssetsLowInflation = nil }},
		{"benchmark outside universe", func(o *Options) { o.Benchmark = "SPY" }},
		{"momentum asset outside universe", func(o *Options) { o.MomentumAssets = []string{"SPY"} }},
		{"unknown trigger kind", func(o *Options) { o.TriggerKind = "sma" }},
		{"unknown interval", func(o *Options) { o.Interval = "7min" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			if _, err := New(o); !errors.Is(err, model.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNew_InvalidTrendOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{"multi-asset universe", func(o *Options) { o.Universe = []string{"BTC", "ETH"} }},
		{"fast at slow", func(o *Options) { o.FastLength = o.SlowLength }},
		{"negative stop", func(o *Options) { o.StopPct = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := trendOptions()
			tt.mutate(&o)
			if _, err := New(o); !errors.Is(err, model.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
