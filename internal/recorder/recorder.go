package recorder

import "time"

// RunInfo identifies one evaluation run (a live loop session or a backtest).
type RunInfo struct {
	ID       string
	Mode     string
	Source   string
	Universe []string
	Started  time.Time
}

// TickRecord holds everything worth keeping about one evaluated tick.
type TickRecord struct {
	RunID      string
	Time       time.Time
	Regime     string
	Cross      string
	SafeAsset  string
	Selected   []string
	Allocation map[string]float64
	TickErr    string
}

// Recorder persists run history for later analysis.
type Recorder interface {
	BeginRun(run *RunInfo) error
	RecordTick(rec *TickRecord) error
	Close() error
}
