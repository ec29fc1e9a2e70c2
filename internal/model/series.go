package model

import (
	"math"
	"time"
)

// IndicatorSeries is a numeric series aligned 1:1 with a window's timestamps
// for one asset. Warm-up entries, where the indicator has no stable value
// yet, are NaN.
type IndicatorSeries []float64

// At returns the value at index i, or NaN when i is out of range.
func (s IndicatorSeries) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// Last returns the most recent value, or NaN for an empty series.
func (s IndicatorSeries) Last() float64 { return s.At(len(s) - 1) }

// Prev returns the value one step before the latest.
func (s IndicatorSeries) Prev() float64 { return s.At(len(s) - 2) }

// Defined reports whether index i holds a stable (non-NaN) value.
func (s IndicatorSeries) Defined(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// MacroPoint is one observation of an auxiliary data series (for example a
// CPI reading).
type MacroPoint struct {
	Time  time.Time
	Value float64
}

// MacroSeries is an ordered sequence of macro observations.
type MacroSeries []MacroPoint

// Latest returns the most recent observation's value, or false when the
// series is empty.
func (m MacroSeries) Latest() (float64, bool) {
	if len(m) == 0 {
		return 0, false
	}
	return m[len(m)-1].Value, true
}
