package calculator

import (
	"fmt"
	"math"

	"AllocSentinel/internal/model"
)

// go-talib ships no VWAP, so both variants are computed here from typical
// price (H+L+C)/3.

// VWAP computes the rolling volume-weighted average price over the given
// length. The first length-1 entries are warm-up. A zero-volume span yields
// NaN for that index.
func VWAP(bars []model.PricePoint, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindVWAP); err != nil {
		return nil, err
	}
	if err := needSamples(len(bars), length, KindVWAP); err != nil {
		return nil, err
	}
	out := make(model.IndicatorSeries, len(bars))
	var sumTPV, sumVol float64
	for i, b := range bars {
		tp := (b.High + b.Low + b.Close) / 3
		sumTPV += tp * b.Volume
		sumVol += b.Volume
		if i >= length {
			old := bars[i-length]
			oldTP := (old.High + old.Low + old.Close) / 3
			sumTPV -= oldTP * old.Volume
			sumVol -= old.Volume
		}
		if i < length-1 || sumVol == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sumTPV / sumVol
	}
	return out, nil
}

// AnchoredVWAP accumulates volume-weighted average price from the start of
// each anchor period (month, quarter or year), resetting at every period
// boundary. It tolerates arbitrarily short windows; a zero-volume prefix
// carries the previous value forward.
func AnchoredVWAP(bars []model.PricePoint, anchor AnchorPeriod) (model.IndicatorSeries, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: anchored vwap needs at least 1 sample", model.ErrInsufficientData)
	}
	out := make(model.IndicatorSeries, len(bars))
	var sumTPV, sumVol float64
	prev := math.NaN()
	for i, b := range bars {
		if i > 0 && anchorKey(bars[i-1], anchor) != anchorKey(b, anchor) {
			sumTPV, sumVol = 0, 0
		}
		tp := (b.High + b.Low + b.Close) / 3
		sumTPV += tp * b.Volume
		sumVol += b.Volume
		if sumVol == 0 {
			out[i] = prev
			continue
		}
		out[i] = sumTPV / sumVol
		prev = out[i]
	}
	return out, nil
}

func anchorKey(b model.PricePoint, anchor AnchorPeriod) int {
	y, m, _ := b.Time.Date()
	switch anchor {
	case AnchorQuarter:
		return y*4 + (int(m)-1)/3
	case AnchorYear:
		return y
	default: // month
		return y*12 + int(m) - 1
	}
}
