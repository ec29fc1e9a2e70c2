package calculator

import (
	"fmt"
	"math"

	"AllocSentinel/internal/model"
)

// Kind identifies a supported indicator.
type Kind string

const (
	KindSMA          Kind = "sma"
	KindEMA          Kind = "ema"
	KindRSI          Kind = "rsi"
	KindATR          Kind = "atr"
	KindMomentum     Kind = "momentum"
	KindVWAP         Kind = "vwap"
	KindAnchoredVWAP Kind = "anchored_vwap"
)

// AnchorPeriod selects where an anchored VWAP accumulation restarts.
type AnchorPeriod string

const (
	AnchorMonth   AnchorPeriod = "month"
	AnchorQuarter AnchorPeriod = "quarter"
	AnchorYear    AnchorPeriod = "year"
)

// Params configures an indicator computation. Length is ignored by the
// anchored VWAP, Anchor by everything else.
type Params struct {
	Length int
	Anchor AnchorPeriod
}

// Compute evaluates one indicator for one asset over the window. The result
// is aligned 1:1 with the window's timestamps; entries before the first
// stable value are NaN. Compute is a pure function: identical inputs yield
// bit-identical series.
func Compute(kind Kind, asset string, window model.Window, p Params) (model.IndicatorSeries, error) {
	bars, err := window.Bars(asset)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindSMA:
		return SMA(closesOf(bars), p.Length)
	case KindEMA:
		return EMA(closesOf(bars), p.Length)
	case KindRSI:
		return RSI(closesOf(bars), p.Length)
	case KindATR:
		return ATR(bars, p.Length)
	case KindMomentum:
		return Momentum(closesOf(bars), p.Length)
	case KindVWAP:
		return VWAP(bars, p.Length)
	case KindAnchoredVWAP:
		return AnchoredVWAP(bars, p.Anchor)
	default:
		return nil, fmt.Errorf("%w: unknown indicator kind %q", model.ErrInvalidConfig, kind)
	}
}

func closesOf(bars []model.PricePoint) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// maskWarmup replaces the first n entries of a freshly computed series with
// NaN. The talib kernels emit zeros there, which are indistinguishable from
// real values.
func maskWarmup(values []float64, n int) model.IndicatorSeries {
	out := model.IndicatorSeries(values)
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = math.NaN()
	}
	return out
}

func needSamples(have, want int, kind Kind) error {
	if have < want {
		return fmt.Errorf("%w: %s needs %d samples, window has %d",
			model.ErrInsufficientData, kind, want, have)
	}
	return nil
}

func checkLength(length int, kind Kind) error {
	if length <= 0 {
		return fmt.Errorf("%w: %s length must be positive, got %d",
			model.ErrInvalidConfig, kind, length)
	}
	return nil
}
