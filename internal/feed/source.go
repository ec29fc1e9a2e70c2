package feed

import "AllocSentinel/internal/strategy"

// Source supplies assembled tick inputs in chronological order. Tick i sees
// the history up to and including snapshot i (expanding window), so the
// engine itself never reads files or the network.
type Source interface {
	Universe() []string
	Len() int
	At(i int) (strategy.TickInput, error)
	Name() string
}
