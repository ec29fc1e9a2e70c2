package strategy

import (
	"fmt"
	"sync"
	"time"

	"AllocSentinel/internal/model"
)

// TickInput is everything the engine sees on one evaluation: the assembled
// OHLCV window plus zero or more named auxiliary series. The engine performs
// no I/O of its own.
type TickInput struct {
	Window model.Window
	Macro  map[string]model.MacroSeries
}

// Decision summarizes what the last tick did, for reporting and recording.
type Decision struct {
	Time      time.Time
	Regime    Regime
	Cross     CrossSignal
	SafeAsset string
	Selected  []string
}

// Engine turns one bar of data into a target allocation, one atomic Tick at
// a time. It exclusively owns all cross-tick state (risk-off cooldown,
// position book); ticks must arrive in non-decreasing timestamp order and
// must not overlap. One engine instance serves one strategy; independent
// strategies get independent instances.
type Engine struct {
	mu       sync.Mutex
	opts     Options
	riskOff  riskOffGate
	pos      PositionState
	lastEnd  time.Time
	decision Decision
}

// New validates the options and constructs an engine with zeroed persistent
// state. Out-of-range options fail with ErrInvalidConfig.
func New(opts Options) (*Engine, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns a copy of the engine's effective (defaulted) options.
func (e *Engine) Options() Options { return e.opts }

// Position returns a copy of the position state.
func (e *Engine) Position() PositionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// LastDecision returns a copy of the last tick's decision summary.
func (e *Engine) LastDecision() Decision {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.decision
	d.Selected = append([]string(nil), e.decision.Selected...)
	return d
}

// Tick evaluates one bar. It always returns a universe-complete allocation:
// on any non-fatal failure the allocation is the flat (all-zero) vector and
// the error explains what was missing. The input window is never mutated.
func (e *Engine) Tick(in TickInput) (model.AllocationVector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	flat := model.NewAllocationVector(e.opts.Universe)
	e.decision = Decision{Time: in.Window.EndTime(), Regime: RegimeFlat}

	if in.Window.Len() == 0 {
		return flat, fmt.Errorf("%w: empty window", model.ErrMissingData)
	}
	end := in.Window.EndTime()
	if !e.lastEnd.IsZero() && end.Before(e.lastEnd) {
		return flat, fmt.Errorf("%w: window ends %s, previous tick ended %s",
			model.ErrOutOfOrderTick, end.Format(time.RFC3339), e.lastEnd.Format(time.RFC3339))
	}
	e.lastEnd = end
	e.decision.Time = end

	var alloc model.AllocationVector
	var err error
	switch e.opts.Mode {
	case ModeTrend:
		alloc, err = e.trendTick(in, flat)
	default:
		alloc, err = e.rotationTick(in, flat)
	}
	if err != nil {
		return alloc, err
	}
	if gross := alloc.Gross(); gross > e.opts.MaxGross+grossTolerance {
		// Leverage cap is an engine invariant, not a caller concern.
		for asset, w := range alloc {
			alloc[asset] = w * e.opts.MaxGross / gross
		}
	}
	return alloc, nil
}

const grossTolerance = 1e-9

// defensive returns the fixed risk-off allocation: everything in the
// defensive asset.
func (e *Engine) defensive() model.AllocationVector {
	alloc := model.NewAllocationVector(e.opts.Universe)
	alloc[e.opts.DefensiveAsset] = 1.0
	return alloc
}
