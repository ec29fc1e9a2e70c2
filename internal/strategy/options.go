package strategy

import (
	"fmt"
	"slices"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"

	"AllocSentinel/internal/calculator"
	"AllocSentinel/internal/model"
)

// Mode selects the strategy shape the engine runs.
type Mode string

const (
	// ModeRotation allocates a multi-asset weighted book with a risk-off gate.
	ModeRotation Mode = "rotation"
	// ModeTrend runs a single-asset long position with exit rules.
	ModeTrend Mode = "trend"
)

// TriggerKind selects the benchmark reference indicator for the risk-off
// trigger.
type TriggerKind string

const (
	TriggerEMA          TriggerKind = "ema"
	TriggerAnchoredVWAP TriggerKind = "anchored_vwap"
)

// Options is the engine configuration, fixed at construction and immutable
// thereafter. Zero fields take the documented defaults; out-of-range values
// fail construction with ErrInvalidConfig.
type Options struct {
	Mode     Mode           `yaml:"mode" default:"rotation" validate:"oneof=rotation trend"`
	Universe []string       `yaml:"universe" validate:"min=1,unique"`
	Interval model.Interval `yaml:"interval" default:"1day" validate:"oneof=1min 5min 1hour 1day"`

	// Rotation mode.
	Benchmark               string      `yaml:"benchmark"`
	DefensiveAsset          string      `yaml:"defensive_asset"`
	MomentumAssets          []string    `yaml:"momentum_assets" validate:"unique"`
	SafeAssetsLowInflation  []string    `yaml:"safe_assets_low_inflation" validate:"unique"`
	SafeAssetsHighInflation []string    `yaml:"safe_assets_high_inflation" validate:"unique"`
	MacroKey                string      `yaml:"macro_key" default:"median_cpi"`
	InflationThreshold      float64     `yaml:"inflation_threshold" default:"3"`
	BaseAllocation          float64     `yaml:"base_allocation" default:"0.3" validate:"gte=0,lte=1"`
	TopK                    int         `yaml:"top_k" default:"3" validate:"gte=1"`
	RiskOffCooldown         int         `yaml:"risk_off_cooldown" default:"3" validate:"gte=0"`
	TriggerKind             TriggerKind `yaml:"trigger_kind" default:"ema" validate:"oneof=ema anchored_vwap"`
	TriggerLength           int         `yaml:"trigger_length" default:"30" validate:"gte=1"`
	TriggerAnchor           calculator.AnchorPeriod `yaml:"trigger_anchor" default:"quarter" validate:"oneof=month quarter year"`

	// Momentum scoring (both modes feed the scorer through these).
	MomLong         int     `yaml:"mom_long" default:"125" validate:"gte=1"`
	MomShort        int     `yaml:"mom_short" default:"15" validate:"gte=1"`
	ShortWeight     float64 `yaml:"short_weight" default:"0.15" validate:"gte=0,lte=1"`
	ScoreVWAPLength int     `yaml:"score_vwap_length" default:"5" validate:"gte=0"`

	// Trend mode.
	FastLength  int     `yaml:"fast_length" default:"3" validate:"gte=1"`
	SlowLength  int     `yaml:"slow_length" default:"5" validate:"gte=2"`
	ConfirmBars int     `yaml:"confirm_bars" default:"3" validate:"gte=2"`
	StopPct     float64 `yaml:"stop_pct" default:"0.02" validate:"gt=0,lt=1"`
	TrailPct    float64 `yaml:"trail_pct" default:"0.01" validate:"gt=0,lt=1"`
	TakeProfitPct float64 `yaml:"take_profit_pct" default:"0.5" validate:"gt=0"`
	// Re-entry suppression after an exit, in ticks. The two exits carried
	// different magnitudes in the source behavior, so they stay separate.
	StopCooldown       int `yaml:"stop_cooldown" default:"10" validate:"gte=0"`
	TakeProfitCooldown int `yaml:"take_profit_cooldown" default:"5" validate:"gte=0"`

	// MaxGross caps the sum of absolute weights of any emitted allocation.
	MaxGross float64 `yaml:"max_gross" default:"1.0" validate:"gt=0"`
}

var validate = validator.New()

// normalize applies defaults and checks ranges plus the cross-field rules the
// tag language cannot express.
func (o *Options) normalize() error {
	if err := defaults.Set(o); err != nil {
		return fmt.Errorf("%w: apply defaults: %v", model.ErrInvalidConfig, err)
	}
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidConfig, err)
	}
	if o.MomShort >= o.MomLong {
		return fmt.Errorf("%w: mom_short (%d) must be below mom_long (%d)",
			model.ErrInvalidConfig, o.MomShort, o.MomLong)
	}
	switch o.Mode {
	case ModeRotation:
		return o.normalizeRotation()
	case ModeTrend:
		if len(o.Universe) != 1 {
			return fmt.Errorf("%w: trend mode runs a single-asset universe, got %d assets",
				model.ErrInvalidConfig, len(o.Universe))
		}
		if o.FastLength >= o.SlowLength {
			return fmt.Errorf("%w: fast_length (%d) must be below slow_length (%d)",
				model.ErrInvalidConfig, o.FastLength, o.SlowLength)
		}
	}
	return nil
}

func (o *Options) normalizeRotation() error {
	if o.Benchmark == "" {
		return fmt.Errorf("%w: rotation mode requires a benchmark asset", model.ErrInvalidConfig)
	}
	if o.DefensiveAsset == "" {
		return fmt.Errorf("%w: rotation mode requires a defensive asset", model.ErrInvalidConfig)
	}
	if len(o.MomentumAssets) == 0 {
		return fmt.Errorf("%w: rotation mode requires momentum assets", model.ErrInvalidConfig)
	}
	if len(o.SafeAssetsLowInflation) == 0 || len(o.SafeAssetsHighInflation) == 0 {
		return fmt.Errorf("%w: rotation mode requires both safe asset pools", model.ErrInvalidConfig)
	}
	for _, group := range [][]string{
		{o.Benchmark, o.DefensiveAsset},
		o.MomentumAssets,
		o.SafeAssetsLowInflation,
		o.SafeAssetsHighInflation,
	} {
		for _, asset := range group {
			if !slices.Contains(o.Universe, asset) {
				return fmt.Errorf("%w: asset %s referenced outside the universe",
					model.ErrInvalidConfig, asset)
			}
		}
	}
	return nil
}
