package calculator

import (
	talib "github.com/markcheno/go-talib"

	"AllocSentinel/internal/model"
)

// ATR computes the Wilder-smoothed average true range. The first true range
// needs a prior close, so length+1 samples are required and the first length
// entries are warm-up.
func ATR(bars []model.PricePoint, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindATR); err != nil {
		return nil, err
	}
	if err := needSamples(len(bars), length+1, KindATR); err != nil {
		return nil, err
	}
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
	}
	return maskWarmup(talib.Atr(high, low, closes, length), length), nil
}
