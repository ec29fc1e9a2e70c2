package calculator

import (
	talib "github.com/markcheno/go-talib"

	"AllocSentinel/internal/model"
)

// SMA computes the simple moving average over the given length. The first
// length-1 entries are warm-up.
func SMA(closes []float64, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindSMA); err != nil {
		return nil, err
	}
	if err := needSamples(len(closes), length, KindSMA); err != nil {
		return nil, err
	}
	return maskWarmup(talib.Sma(closes, length), length-1), nil
}

// EMA computes the exponential moving average, seeded with the SMA of the
// first length samples. The first length-1 entries are warm-up.
func EMA(closes []float64, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindEMA); err != nil {
		return nil, err
	}
	if err := needSamples(len(closes), length, KindEMA); err != nil {
		return nil, err
	}
	return maskWarmup(talib.Ema(closes, length), length-1), nil
}
