package feed

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"AllocSentinel/internal/model"
	"AllocSentinel/internal/strategy"
)

// FileSource replays already-exported history: one candle JSON file per
// universe asset plus an optional macro CSV. All assets must cover the same
// timestamps; gaps fail loading rather than silently skewing snapshots.
type FileSource struct {
	universe []string
	macroKey string
	snaps    []model.Snapshot
	macro    model.MacroSeries
}

type candleFile struct {
	Candles []candleJSON `json:"candles"`
}

type candleJSON struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// NewFileSource loads <dir>/<ASSET>.json for every universe asset
// concurrently, aligns the bars into snapshots, and optionally loads a macro
// CSV published under macroKey.
func NewFileSource(dir string, universe []string, macroFile, macroKey string) (*FileSource, error) {
	var mu sync.Mutex
	bars := make(map[string][]model.PricePoint, len(universe))

	var g errgroup.Group
	for _, asset := range universe {
		asset := asset
		g.Go(func() error {
			series, err := loadCandles(filepath.Join(dir, asset+".json"), asset)
			if err != nil {
				return fmt.Errorf("load %s: %w", asset, err)
			}
			mu.Lock()
			bars[asset] = series
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snaps, err := alignSnapshots(universe, bars)
	if err != nil {
		return nil, err
	}

	s := &FileSource{universe: universe, macroKey: macroKey, snaps: snaps}
	if macroFile != "" {
		macro, err := loadMacroCSV(macroFile)
		if err != nil {
			return nil, fmt.Errorf("load macro: %w", err)
		}
		s.macro = macro
	}
	return s, nil
}

func (s *FileSource) Name() string       { return "file" }
func (s *FileSource) Universe() []string { return s.universe }
func (s *FileSource) Len() int           { return len(s.snaps) }

func (s *FileSource) At(i int) (strategy.TickInput, error) {
	if i < 0 || i >= len(s.snaps) {
		return strategy.TickInput{}, fmt.Errorf("tick index %d out of range [0,%d)", i, len(s.snaps))
	}
	in := strategy.TickInput{Window: model.Window(s.snaps[:i+1])}
	if s.macro != nil {
		end := in.Window.EndTime()
		visible := s.macro
		for len(visible) > 0 && visible[len(visible)-1].Time.After(end) {
			visible = visible[:len(visible)-1]
		}
		in.Macro = map[string]model.MacroSeries{s.macroKey: visible}
	}
	return in, nil
}

func loadCandles(path, asset string) ([]model.PricePoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file candleFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	bars := make([]model.PricePoint, 0, len(file.Candles))
	for _, c := range file.Candles {
		ts, err := parseTime(c.Time)
		if err != nil {
			return nil, fmt.Errorf("bar time %q: %w", c.Time, err)
		}
		bars = append(bars, model.PricePoint{
			Asset:  asset,
			Time:   ts,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

var timeLayouts = []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(raw string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

func alignSnapshots(universe []string, bars map[string][]model.PricePoint) ([]model.Snapshot, error) {
	if len(universe) == 0 {
		return nil, fmt.Errorf("empty universe")
	}
	ref := bars[universe[0]]
	for _, asset := range universe[1:] {
		if len(bars[asset]) != len(ref) {
			return nil, fmt.Errorf("asset %s has %d bars, %s has %d",
				asset, len(bars[asset]), universe[0], len(ref))
		}
	}
	snaps := make([]model.Snapshot, len(ref))
	for i := range ref {
		snap := make(model.Snapshot, len(universe))
		for _, asset := range universe {
			b := bars[asset][i]
			if !b.Time.Equal(ref[i].Time) {
				return nil, fmt.Errorf("asset %s bar %d at %s, expected %s",
					asset, i, b.Time.Format(time.RFC3339), ref[i].Time.Format(time.RFC3339))
			}
			snap[asset] = b
		}
		snaps[i] = snap
	}
	return snaps, nil
}

// loadMacroCSV reads "date,value" rows; a non-numeric first row is treated
// as a header.
func loadMacroCSV(path string) (model.MacroSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	var series model.MacroSeries
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("macro row needs date,value: %v", row)
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			if len(series) == 0 {
				continue // header
			}
			return nil, fmt.Errorf("macro value %q: %w", row[1], err)
		}
		ts, err := parseTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("macro date %q: %w", row[0], err)
		}
		series = append(series, model.MacroPoint{Time: ts, Value: value})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	return series, nil
}
