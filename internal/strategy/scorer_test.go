package strategy

import (
	"math"
	"reflect"
	"testing"
)

func scoringEngine(vwapLength int) *Engine {
	return &Engine{opts: Options{
		MomLong:         10,
		MomShort:        2,
		ShortWeight:     0.15,
		ScoreVWAPLength: vwapLength,
	}}
}

func TestMomentumScore_LongReturnMinusWeightedShort(t *testing.T) {
	eng := scoringEngine(0)
	window := windowFrom(map[string][]float64{"X": growPlateau(0.3, 16)})

	s := eng.momentumScore("X", window)
	if !s.Valid {
		t.Fatal("score should be valid")
	}
	// Flat tail: short return is zero, long return spans half the rise.
	want := 1.3/1.15 - 1
	if math.Abs(s.Value-want) > 1e-9 {
		t.Errorf("score = %f, want %f", s.Value, want)
	}
}

func TestMomentumScore_VWAPDistanceAdjustment(t *testing.T) {
	bare := scoringEngine(0)
	adjusted := scoringEngine(5)
	window := windowFrom(map[string][]float64{"X": growPlateau(0.3, 16)})

	a := bare.momentumScore("X", window)
	b := adjusted.momentumScore("X", window)
	if !a.Valid || !b.Valid {
		t.Fatal("both scores should be valid")
	}
	// Five flat bars: typical price VWAP equals the close, adjustment is 0.
	if math.Abs(a.Value-b.Value) > 1e-9 {
		t.Errorf("flat-tail adjustment changed the score: %f vs %f", a.Value, b.Value)
	}

	// A rising tail leaves the VWAP below the close, dragging the score down.
	risingWin := windowFrom(map[string][]float64{"X": rising(16)})
	c := adjusted.momentumScore("X", risingWin)
	d := bare.momentumScore("X", risingWin)
	if !c.Valid || !d.Valid {
		t.Fatal("both rising-tail scores should be valid")
	}
	if c.Value >= d.Value {
		t.Errorf("adjustment should lower the rising-tail score: %f vs %f", c.Value, d.Value)
	}
}

func TestMomentumScore_Invalid(t *testing.T) {
	eng := scoringEngine(0)
	short := windowFrom(map[string][]float64{"X": rising(8)})

	if s := eng.momentumScore("X", short); s.Valid {
		t.Error("8 bars cannot cover a 10-bar return, score must be invalid")
	}
	full := windowFrom(map[string][]float64{"X": rising(16)})
	if s := eng.momentumScore("Y", full); s.Valid {
		t.Error("absent asset must yield an invalid score")
	}
	zeros := windowFrom(map[string][]float64{"X": make([]float64, 16)})
	if s := eng.momentumScore("X", zeros); s.Valid {
		t.Error("zero reference prices must yield an invalid score")
	}
}

func TestSelectTopK(t *testing.T) {
	scores := []Score{
		{Asset: "A", Value: 1.0, Valid: true},
		{Asset: "B", Value: 2.0, Valid: true},
		{Asset: "C", Value: 1.0, Valid: true},
		{Asset: "D", Value: 9.0, Valid: false},
	}
	tests := []struct {
		name string
		k    int
		want []string
	}{
		{"ties keep candidate order", 3, []string{"B", "A", "C"}},
		{"truncates to k", 2, []string{"B", "A"}},
		{"k beyond valid count", 10, []string{"B", "A", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectTopK(scores, tt.k); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectTopK(k=%d) = %v, want %v", tt.k, got, tt.want)
			}
		})
	}

	if got := selectTopK([]Score{{Asset: "D", Valid: false}}, 3); len(got) != 0 {
		t.Errorf("all-invalid selection = %v, want empty", got)
	}
}

func TestBestOf(t *testing.T) {
	tests := []struct {
		name   string
		scores []Score
		want   string
	}{
		{"highest valid wins", []Score{
			{Asset: "A", Value: 0.1, Valid: true},
			{Asset: "B", Value: 0.5, Valid: true},
		}, "B"},
		{"negative beats invalid", []Score{
			{Asset: "A", Valid: false},
			{Asset: "B", Value: -0.2, Valid: true},
		}, "B"},
		{"all invalid falls back to first", []Score{
			{Asset: "A", Valid: false},
			{Asset: "B", Valid: false},
		}, "A"},
		{"empty pool", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestOf(tt.scores); got != tt.want {
				t.Errorf("bestOf = %q, want %q", got, tt.want)
			}
		})
	}
}
