package model

import "time"

// PricePoint is a single OHLCV bar for one asset over one interval.
// Immutable once recorded.
type PricePoint struct {
	Asset  string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Snapshot maps asset id to its bar for one timestamp.
type Snapshot map[string]PricePoint

// Window is a chronologically ordered sequence of snapshots, one per
// timestamp. The engine treats it as a read-only view supplied by the caller.
type Window []Snapshot

// Interval identifies the bar granularity of a window.
type Interval string

const (
	Interval1Min  Interval = "1min"
	Interval5Min  Interval = "5min"
	Interval1Hour Interval = "1hour"
	Interval1Day  Interval = "1day"
)

// Len returns the number of snapshots in the window.
func (w Window) Len() int { return len(w) }

// Latest returns the most recent bar for the asset, or false if the asset is
// absent from the last snapshot.
func (w Window) Latest(asset string) (PricePoint, bool) {
	if len(w) == 0 {
		return PricePoint{}, false
	}
	p, ok := w[len(w)-1][asset]
	return p, ok
}

// EndTime returns the timestamp of the last snapshot, or the zero time for an
// empty window.
func (w Window) EndTime() time.Time {
	if len(w) == 0 {
		return time.Time{}
	}
	for _, p := range w[len(w)-1] {
		return p.Time
	}
	return time.Time{}
}

// Closes extracts the close series for one asset. A snapshot missing the
// asset fails with ErrMissingData so callers never silently skip bars.
func (w Window) Closes(asset string) ([]float64, error) {
	closes := make([]float64, len(w))
	for i, snap := range w {
		p, ok := snap[asset]
		if !ok {
			return nil, missingAsset(asset)
		}
		closes[i] = p.Close
	}
	return closes, nil
}

// Bars extracts the full bar series for one asset.
func (w Window) Bars(asset string) ([]PricePoint, error) {
	bars := make([]PricePoint, len(w))
	for i, snap := range w {
		p, ok := snap[asset]
		if !ok {
			return nil, missingAsset(asset)
		}
		bars[i] = p
	}
	return bars, nil
}
