package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCandles(t *testing.T, dir, asset, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, asset+".json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileSource_LoadAndReplay(t *testing.T) {
	dir := t.TempDir()
	writeCandles(t, dir, "AAA", `{"candles":[
		{"time":"2024-01-01","open":10,"high":11,"low":9,"close":10.5,"volume":100},
		{"time":"2024-01-02","open":10.5,"high":12,"low":10,"close":11.5,"volume":120},
		{"time":"2024-01-03","open":11.5,"high":13,"low":11,"close":12.5,"volume":90}]}`)
	writeCandles(t, dir, "BBB", `{"candles":[
		{"time":"2024-01-03","open":21,"high":22,"low":20,"close":21.5,"volume":50},
		{"time":"2024-01-01","open":20,"high":21,"low":19,"close":20.5,"volume":40},
		{"time":"2024-01-02","open":20.5,"high":22,"low":20,"close":21,"volume":60}]}`)

	macroPath := filepath.Join(dir, "cpi.csv")
	macroBody := "date,value\n2024-01-01,2.4\n2024-01-02,2.6\n2024-01-05,3.1\n"
	if err := os.WriteFile(macroPath, []byte(macroBody), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(dir, []string{"AAA", "BBB"}, macroPath, "median_cpi")
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}

	// Tick 1 sees two snapshots; out-of-order BBB rows were sorted.
	in, err := src.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if in.Window.Len() != 2 {
		t.Fatalf("window length = %d, want 2", in.Window.Len())
	}
	bar, ok := in.Window.Latest("BBB")
	if !ok || bar.Close != 21 {
		t.Errorf("BBB latest close = %f (present=%v), want 21", bar.Close, ok)
	}

	// Only macro observations at or before the tick's end time are visible.
	macro := in.Macro["median_cpi"]
	if len(macro) != 2 {
		t.Fatalf("visible macro points = %d, want 2", len(macro))
	}
	if v, ok := macro.Latest(); !ok || v != 2.6 {
		t.Errorf("macro latest = %f, want 2.6", v)
	}

	if _, err := src.At(3); err == nil {
		t.Error("At past the end should fail")
	}
}

func TestFileSource_RejectsMisalignedHistory(t *testing.T) {
	dir := t.TempDir()
	writeCandles(t, dir, "AAA", `{"candles":[
		{"time":"2024-01-01","open":1,"high":1,"low":1,"close":1,"volume":1},
		{"time":"2024-01-02","open":1,"high":1,"low":1,"close":1,"volume":1}]}`)
	writeCandles(t, dir, "BBB", `{"candles":[
		{"time":"2024-01-01","open":1,"high":1,"low":1,"close":1,"volume":1}]}`)

	if _, err := NewFileSource(dir, []string{"AAA", "BBB"}, "", ""); err == nil {
		t.Fatal("mismatched bar counts should fail loading")
	}

	writeCandles(t, dir, "BBB", `{"candles":[
		{"time":"2024-01-01","open":1,"high":1,"low":1,"close":1,"volume":1},
		{"time":"2024-01-05","open":1,"high":1,"low":1,"close":1,"volume":1}]}`)
	if _, err := NewFileSource(dir, []string{"AAA", "BBB"}, "", ""); err == nil {
		t.Fatal("mismatched timestamps should fail loading")
	}
}

func TestMockSource_Deterministic(t *testing.T) {
	a := NewMockSource([]string{"X", "Y"}, 30, 100, "median_cpi", 2.0)
	b := NewMockSource([]string{"X", "Y"}, 30, 100, "median_cpi", 2.0)
	if a.Len() != 30 {
		t.Fatalf("Len = %d, want 30", a.Len())
	}
	inA, err := a.At(29)
	if err != nil {
		t.Fatalf("At(29): %v", err)
	}
	inB, _ := b.At(29)
	barA, _ := inA.Window.Latest("X")
	barB, _ := inB.Window.Latest("X")
	if barA.Close != barB.Close {
		t.Errorf("mock bars differ between identical sources: %f vs %f", barA.Close, barB.Close)
	}
	if v, ok := inA.Macro["median_cpi"].Latest(); !ok || v != 2.0 {
		t.Errorf("macro latest = %f, want 2.0", v)
	}
}
