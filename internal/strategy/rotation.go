package strategy

import (
	"fmt"
	"math"

	"AllocSentinel/internal/calculator"
	"AllocSentinel/internal/model"
)

// rotationTick runs the multi-asset path: cooldown gate, benchmark trigger,
// macro-gated safe pool, then risk-on construction.
func (e *Engine) rotationTick(in TickInput, flat model.AllocationVector) (model.AllocationVector, error) {
	o := &e.opts

	// Cooldown gate first: while cooling down the defensive allocation is
	// forced regardless of market data and the trigger is not re-evaluated.
	if e.riskOff.step() {
		e.decision.Regime = RegimeRiskOff
		return e.defensive(), nil
	}

	bench, ok := in.Window.Latest(o.Benchmark)
	if !ok {
		return flat, fmt.Errorf("%w: benchmark %s absent from tick", model.ErrMissingData, o.Benchmark)
	}
	ref, err := e.triggerReference(in.Window)
	if err != nil {
		return flat, fmt.Errorf("benchmark reference: %w", err)
	}
	refVal := ref.Last()
	if math.IsNaN(refVal) {
		return flat, fmt.Errorf("%w: benchmark reference still warming up", model.ErrInsufficientData)
	}

	macro, ok := in.Macro[o.MacroKey]
	if !ok {
		return flat, fmt.Errorf("%w: auxiliary series %q not supplied", model.ErrMissingData, o.MacroKey)
	}
	macroVal, ok := macro.Latest()
	if !ok {
		return flat, fmt.Errorf("%w: auxiliary series %q is empty", model.ErrMissingData, o.MacroKey)
	}

	pool := o.SafeAssetsHighInflation
	if macroVal < o.InflationThreshold {
		pool = o.SafeAssetsLowInflation
	}
	safe := bestOf(e.scoreAll(pool, in.Window))
	e.decision.SafeAsset = safe

	if bench.Close < refVal {
		e.riskOff.trigger(o.RiskOffCooldown)
		e.decision.Regime = RegimeRiskOff
		return e.defensive(), nil
	}
	e.riskOff.reset()
	e.decision.Regime = RegimeRiskOn

	selected := selectTopK(e.scoreAll(o.MomentumAssets, in.Window), o.TopK)
	e.decision.Selected = selected
	if len(selected) == 0 {
		alloc := model.NewAllocationVector(o.Universe)
		alloc[safe] = 1.0
		return alloc, nil
	}

	alloc := model.NewAllocationVector(o.Universe)
	alloc[safe] += o.BaseAllocation
	residual := (1 - o.BaseAllocation) / float64(len(selected))
	for _, asset := range selected {
		// Additive: a safe asset that also ranks in the top-k accumulates.
		alloc[asset] += residual
	}
	if alloc.Sum() <= 0 {
		// Degenerate tick: emit the safe-asset-only allocation.
		alloc = model.NewAllocationVector(o.Universe)
		alloc[safe] = 1.0
		return alloc, nil
	}
	alloc.Normalize()
	return alloc, nil
}

// triggerReference computes the benchmark's reference indicator for the
// risk-off trigger.
func (e *Engine) triggerReference(window model.Window) (model.IndicatorSeries, error) {
	o := &e.opts
	switch o.TriggerKind {
	case TriggerAnchoredVWAP:
		return calculator.Compute(calculator.KindAnchoredVWAP, o.Benchmark, window,
			calculator.Params{Anchor: o.TriggerAnchor})
	default:
		return calculator.Compute(calculator.KindEMA, o.Benchmark, window,
			calculator.Params{Length: o.TriggerLength})
	}
}
