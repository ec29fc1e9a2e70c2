package strategy

import (
	"fmt"

	"AllocSentinel/internal/calculator"
	"AllocSentinel/internal/model"
)

// PositionState is the trend mode's sole cross-tick memory: entry price and
// watermark of the open position, plus the re-entry cooldown counter. It is
// owned exclusively by the engine and mutated at most once per tick, after
// all read-only evaluation.
type PositionState struct {
	EntryPrice float64
	Watermark  float64
	Open       bool
	Cooldown   int
}

func (p *PositionState) enter(price float64) {
	p.EntryPrice = price
	p.Watermark = price
	p.Open = true
}

func (p *PositionState) flatten(cooldown int) {
	p.EntryPrice = 0
	p.Watermark = 0
	p.Open = false
	p.Cooldown = cooldown
}

// ExitReason names which exit rule fired.
type ExitReason string

const (
	ExitNone       ExitReason = ""
	ExitHardStop   ExitReason = "HARD_STOP"
	ExitTrailStop  ExitReason = "TRAIL_STOP"
	ExitTakeProfit ExitReason = "TAKE_PROFIT"
)

// checkExits evaluates the exit rules for a long position against the
// current close. The watermark is raised first so the trailing stop always
// measures from the best price seen.
func (e *Engine) checkExits(close float64) ExitReason {
	p := &e.pos
	if close > p.Watermark {
		p.Watermark = close
	}
	switch {
	case (p.EntryPrice-close)/p.EntryPrice > e.opts.StopPct:
		return ExitHardStop
	case (p.Watermark-close)/p.Watermark > e.opts.TrailPct:
		return ExitTrailStop
	case (close-p.EntryPrice)/p.EntryPrice > e.opts.TakeProfitPct:
		return ExitTakeProfit
	default:
		return ExitNone
	}
}

// trendTick runs the single-asset path: re-entry cooldown gate, exit
// overlay, then the entry/hold signal.
func (e *Engine) trendTick(in TickInput, flat model.AllocationVector) (model.AllocationVector, error) {
	o := &e.opts
	asset := o.Universe[0]

	if e.pos.Cooldown > 0 {
		e.pos.Cooldown--
		return flat, nil
	}

	bar, ok := in.Window.Latest(asset)
	if !ok {
		return flat, fmt.Errorf("%w: asset %s absent from tick", model.ErrMissingData, asset)
	}

	if e.pos.Open {
		switch e.checkExits(bar.Close) {
		case ExitHardStop, ExitTrailStop:
			e.pos.flatten(o.StopCooldown)
			return flat, nil
		case ExitTakeProfit:
			e.pos.flatten(o.TakeProfitCooldown)
			return flat, nil
		}
	}

	closes, err := in.Window.Closes(asset)
	if err != nil {
		return flat, err
	}
	fast, err := calculator.SMA(closes, o.FastLength)
	if err != nil {
		return flat, fmt.Errorf("fast sma: %w", err)
	}
	slow, err := calculator.SMA(closes, o.SlowLength)
	if err != nil {
		return flat, fmt.Errorf("slow sma: %w", err)
	}
	e.decision.Cross = DetectCross(fast, slow)

	trending := fast.Last() > slow.Last() && risingTail(fast, o.ConfirmBars)
	if trending {
		if !e.pos.Open {
			e.pos.enter(bar.Close)
		}
		e.decision.Regime = RegimeLong
		alloc := model.NewAllocationVector(o.Universe)
		alloc[asset] = 1.0
		return alloc, nil
	}

	// Trend filter no longer holds: flatten without re-entry suppression.
	if e.pos.Open {
		e.pos.flatten(0)
	}
	return flat, nil
}

// risingTail reports whether the last n values of the series are strictly
// increasing (n-1 comparisons over defined values).
func risingTail(s model.IndicatorSeries, n int) bool {
	if n < 2 || len(s) < n {
		return false
	}
	for i := len(s) - n + 1; i < len(s); i++ {
		if !s.Defined(i) || !s.Defined(i-1) || s[i] <= s[i-1] {
			return false
		}
	}
	return true
}
