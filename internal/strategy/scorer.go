package strategy

import (
	"math"
	"sort"

	"AllocSentinel/internal/calculator"
	"AllocSentinel/internal/model"
)

// Score is an asset's momentum score. Invalid marks a score that could not
// be computed (insufficient history, missing bars, NaN propagation); invalid
// scores rank below every valid one so ranking stays total over the
// candidate set.
type Score struct {
	Asset string
	Value float64
	Valid bool
}

// momentumScore computes the long/short return combination plus the VWAP
// distance adjustment for one asset. Any failure degrades to an invalid
// score; nothing escapes the scorer boundary.
func (e *Engine) momentumScore(asset string, window model.Window) Score {
	o := &e.opts
	closes, err := window.Closes(asset)
	if err != nil {
		return Score{Asset: asset}
	}
	n := len(closes)
	if n < o.MomLong+1 {
		return Score{Asset: asset}
	}
	last := closes[n-1]
	pLong := closes[n-1-o.MomLong]
	pShort := closes[n-1-o.MomShort]
	if pLong == 0 || pShort == 0 {
		return Score{Asset: asset}
	}
	retLong := last/pLong - 1
	retShort := last/pShort - 1
	value := retLong - o.ShortWeight*retShort

	if o.ScoreVWAPLength > 0 {
		bars, err := window.Bars(asset)
		if err != nil {
			return Score{Asset: asset}
		}
		vwap, err := calculator.VWAP(bars, o.ScoreVWAPLength)
		if err != nil {
			return Score{Asset: asset}
		}
		value += vwap.Last() - last
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Score{Asset: asset}
	}
	return Score{Asset: asset, Value: value, Valid: true}
}

func (e *Engine) scoreAll(assets []string, window model.Window) []Score {
	scores := make([]Score, len(assets))
	for i, asset := range assets {
		scores[i] = e.momentumScore(asset, window)
	}
	return scores
}

// selectTopK returns up to k asset ids ranked by descending score. Invalid
// scores are dropped; ties keep the original candidate order (stable sort).
func selectTopK(scores []Score, k int) []string {
	ranked := make([]Score, 0, len(scores))
	for _, s := range scores {
		if s.Valid {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	selected := make([]string, len(ranked))
	for i, s := range ranked {
		selected[i] = s.Asset
	}
	return selected
}

// bestOf returns the highest-scoring asset. When no score is valid the first
// candidate wins, keeping the choice total over a non-empty pool.
func bestOf(scores []Score) string {
	if len(scores) == 0 {
		return ""
	}
	best := scores[0].Asset
	bestVal := math.Inf(-1)
	for _, s := range scores {
		if s.Valid && s.Value > bestVal {
			best = s.Asset
			bestVal = s.Value
		}
	}
	return best
}
