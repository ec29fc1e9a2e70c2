package feed

import (
	"fmt"
	"math"
	"time"

	"AllocSentinel/internal/model"
	"AllocSentinel/internal/strategy"
)

// MockSource generates deterministic synthetic bars for dry runs and tests:
// a mild sine drift per asset so indicators have something to chew on.
type MockSource struct {
	universe []string
	macroKey string
	macroVal float64
	snaps    []model.Snapshot
}

// NewMockSource builds n daily snapshots ending today, base price per asset
// offset by its universe position.
func NewMockSource(universe []string, n int, basePrice float64, macroKey string, macroVal float64) *MockSource {
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -n)
	snaps := make([]model.Snapshot, n)
	for i := 0; i < n; i++ {
		snap := make(model.Snapshot, len(universe))
		for j, asset := range universe {
			base := basePrice * (1 + 0.05*float64(j))
			p := base * (1 + 0.002*float64(i) + 0.01*math.Sin(float64(i+j)/7))
			snap[asset] = model.PricePoint{
				Asset:  asset,
				Time:   start.AddDate(0, 0, i),
				Open:   p * 0.999,
				High:   p * 1.005,
				Low:    p * 0.995,
				Close:  p,
				Volume: 1_000_000,
			}
		}
		snaps[i] = snap
	}
	return &MockSource{universe: universe, macroKey: macroKey, macroVal: macroVal, snaps: snaps}
}

func (s *MockSource) Name() string       { return "mock" }
func (s *MockSource) Universe() []string { return s.universe }
func (s *MockSource) Len() int           { return len(s.snaps) }

func (s *MockSource) At(i int) (strategy.TickInput, error) {
	if i < 0 || i >= len(s.snaps) {
		return strategy.TickInput{}, fmt.Errorf("tick index %d out of range [0,%d)", i, len(s.snaps))
	}
	in := strategy.TickInput{Window: model.Window(s.snaps[:i+1])}
	if s.macroKey != "" {
		in.Macro = map[string]model.MacroSeries{
			s.macroKey: {{Time: in.Window.EndTime(), Value: s.macroVal}},
		}
	}
	return in, nil
}
