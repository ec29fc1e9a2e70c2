package calculator

import (
	talib "github.com/markcheno/go-talib"

	"AllocSentinel/internal/model"
)

// RSI computes the Wilder-smoothed relative strength index. The first price
// change consumes one sample, so length+1 samples are required and the first
// length entries are warm-up.
func RSI(closes []float64, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindRSI); err != nil {
		return nil, err
	}
	if err := needSamples(len(closes), length+1, KindRSI); err != nil {
		return nil, err
	}
	return maskWarmup(talib.Rsi(closes, length), length), nil
}
