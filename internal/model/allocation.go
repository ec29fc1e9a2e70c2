package model

import "math"

// AllocationVector maps asset id to a fraction of capital. Negative weights
// denote short exposure. Every asset in the configured universe appears as a
// key, 0 when unallocated.
type AllocationVector map[string]float64

// NewAllocationVector returns a zero allocation covering the whole universe.
func NewAllocationVector(universe []string) AllocationVector {
	alloc := make(AllocationVector, len(universe))
	for _, asset := range universe {
		alloc[asset] = 0
	}
	return alloc
}

// Sum returns the signed sum of all weights.
func (a AllocationVector) Sum() float64 {
	var sum float64
	for _, w := range a {
		sum += w
	}
	return sum
}

// Gross returns the sum of absolute weights (gross exposure).
func (a AllocationVector) Gross() float64 {
	var sum float64
	for _, w := range a {
		sum += math.Abs(w)
	}
	return sum
}

// Normalize rescales the vector in place so the weights sum to exactly 1.0,
// guarding against floating-point drift. A raw sum <= 0 is a degenerate tick
// and leaves the vector untouched.
func (a AllocationVector) Normalize() {
	sum := a.Sum()
	if sum <= 0 {
		return
	}
	for asset, w := range a {
		a[asset] = w / sum
	}
}
