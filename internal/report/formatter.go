package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"AllocSentinel/internal/model"
	"AllocSentinel/internal/strategy"
)

// FormatTick renders one tick's outcome as a compact log line block.
func FormatTick(d strategy.Decision, alloc model.AllocationVector, tickErr error) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s | regime=%s", d.Time.Format("2006-01-02 15:04"), d.Regime))
	if d.Cross != strategy.NoSignal {
		b.WriteString(fmt.Sprintf(" cross=%s", d.Cross))
	}
	if d.SafeAsset != "" {
		b.WriteString(fmt.Sprintf(" safe=%s", d.SafeAsset))
	}
	if len(d.Selected) > 0 {
		b.WriteString(fmt.Sprintf(" top=[%s]", strings.Join(d.Selected, " ")))
	}
	if tickErr != nil {
		b.WriteString(fmt.Sprintf(" err=%q", tickErr.Error()))
	}
	b.WriteString(" | ")
	b.WriteString(FormatAllocation(alloc))
	return b.String()
}

// FormatAllocation renders non-zero weights sorted by descending weight,
// ties by asset id.
func FormatAllocation(alloc model.AllocationVector) string {
	type entry struct {
		asset  string
		weight float64
	}
	entries := make([]entry, 0, len(alloc))
	for asset, w := range alloc {
		if w != 0 {
			entries = append(entries, entry{asset, w})
		}
	}
	if len(entries) == 0 {
		return "flat"
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].asset < entries[j].asset
	})
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s=%.1f%%", e.asset, e.weight*100)
	}
	return strings.Join(parts, " ")
}

// RunSummary aggregates a finished run for the closing report.
type RunSummary struct {
	RunID     string
	Mode      string
	Started   time.Time
	Finished  time.Time
	Ticks     int
	RiskOn    int
	RiskOff   int
	Long      int
	Flat      int
	ErrTicks  int
	LastAlloc model.AllocationVector
}

// FormatRunSummary renders the closing report of a run.
func (s *RunSummary) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("run %s (%s) finished in %s\n",
		s.RunID, s.Mode, s.Finished.Sub(s.Started).Round(time.Millisecond)))
	b.WriteString(fmt.Sprintf("  ticks evaluated: %s\n", humanize.Comma(int64(s.Ticks))))
	if s.Mode == string(strategy.ModeRotation) {
		b.WriteString(fmt.Sprintf("  risk-on: %s | risk-off: %s\n",
			humanize.Comma(int64(s.RiskOn)), humanize.Comma(int64(s.RiskOff))))
	} else {
		b.WriteString(fmt.Sprintf("  long: %s | flat: %s\n",
			humanize.Comma(int64(s.Long)), humanize.Comma(int64(s.Flat))))
	}
	if s.ErrTicks > 0 {
		b.WriteString(fmt.Sprintf("  degraded ticks: %s\n", humanize.Comma(int64(s.ErrTicks))))
	}
	b.WriteString(fmt.Sprintf("  final allocation: %s\n", FormatAllocation(s.LastAlloc)))
	return b.String()
}

// Observe folds one tick into the summary.
func (s *RunSummary) Observe(d strategy.Decision, alloc model.AllocationVector, tickErr error) {
	s.Ticks++
	switch d.Regime {
	case strategy.RegimeRiskOn:
		s.RiskOn++
	case strategy.RegimeRiskOff:
		s.RiskOff++
	case strategy.RegimeLong:
		s.Long++
	default:
		s.Flat++
	}
	if tickErr != nil {
		s.ErrTicks++
	}
	s.LastAlloc = alloc
}
