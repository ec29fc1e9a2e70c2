package calculator

import (
	talib "github.com/markcheno/go-talib"

	"AllocSentinel/internal/model"
)

// Momentum computes the price difference over the given length
// (close[t] - close[t-length]). Requires length+1 samples; the first length
// entries are warm-up.
func Momentum(closes []float64, length int) (model.IndicatorSeries, error) {
	if err := checkLength(length, KindMomentum); err != nil {
		return nil, err
	}
	if err := needSamples(len(closes), length+1, KindMomentum); err != nil {
		return nil, err
	}
	return maskWarmup(talib.Mom(closes, length), length), nil
}
