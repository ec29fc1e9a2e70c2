package strategy

import "AllocSentinel/internal/model"

// Regime labels the market state the engine acted under on a tick.
type Regime string

const (
	RegimeRiskOn  Regime = "RISK_ON"
	RegimeRiskOff Regime = "RISK_OFF"
	RegimeFlat    Regime = "FLAT"
	RegimeLong    Regime = "LONG"
)

// CrossSignal is the crossover detector state, derived from the last two
// values of a fast and a slow series. It carries no state across ticks.
type CrossSignal int

const (
	NoSignal CrossSignal = iota
	BullCross
	BearCross
)

func (s CrossSignal) String() string {
	switch s {
	case BullCross:
		return "BULL_CROSS"
	case BearCross:
		return "BEAR_CROSS"
	default:
		return "NO_SIGNAL"
	}
}

// DetectCross classifies the latest fast/slow relationship. BullCross fires
// when fast moved above slow on the latest value while the prior value had
// fast at or below slow; BearCross is symmetric. Warm-up (NaN) values yield
// NoSignal.
func DetectCross(fast, slow model.IndicatorSeries) CrossSignal {
	n := len(fast)
	if n < 2 || len(slow) < 2 {
		return NoSignal
	}
	if !fast.Defined(n-1) || !fast.Defined(n-2) ||
		!slow.Defined(len(slow)-1) || !slow.Defined(len(slow)-2) {
		return NoSignal
	}
	f1, s1 := fast.Last(), slow.Last()
	f0, s0 := fast.Prev(), slow.Prev()
	switch {
	case f1 > s1 && f0 <= s0:
		return BullCross
	case f1 < s1 && f0 >= s0:
		return BearCross
	default:
		return NoSignal
	}
}

// riskOffGate owns the risk-off cooldown counter. Once triggered with
// counter N, the next N-1 ticks are forced defensive without re-evaluating
// the trigger; the tick after that returns to normal evaluation with the
// trigger re-armed.
type riskOffGate struct {
	counter int
}

func (g *riskOffGate) trigger(n int) { g.counter = n }

func (g *riskOffGate) active() bool { return g.counter > 0 }

// step advances the cooldown by one tick and reports whether the defensive
// allocation is still forced. The counter decrements before the check, so a
// trigger with N=3 forces the trigger tick plus two further ticks.
func (g *riskOffGate) step() bool {
	if g.counter <= 0 {
		return false
	}
	g.counter--
	return g.counter > 0
}

func (g *riskOffGate) reset() { g.counter = 0 }
