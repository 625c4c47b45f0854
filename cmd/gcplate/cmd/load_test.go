package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestPlatePosFromName(t *testing.T) {
	cases := []struct {
		name string
		pos  string
	}{
		{"screen_run1_B3", "B3"},
		{"screen_run1_b3", "B3"},
		{"A1", "A1"},
		{"blank_injection", ""},
		{"run42", ""},
	}
	for _, c := range cases {
		if got := platePosFromName(c.name); got != c.pos {
			t.Errorf("platePosFromName(%q): expected %q, got %q", c.name, c.pos, got)
		}
	}
}

func TestSampleName(t *testing.T) {
	if got := sampleName(filepath.Join("runs", "screen_run1_B3.mzML")); got != "screen_run1_B3" {
		t.Errorf("unexpected sample name %q", got)
	}
}

func TestLoadFIDInjection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run_A1.csv")

	// Flat baseline with one triangular peak around 0.10 min.
	data := "time,intensity\n"
	times := []float64{}
	for i := 0; i < 21; i++ {
		times = append(times, float64(i)*0.01)
	}
	y := make([]float64, 21)
	for i := range y {
		y[i] = 1
	}
	y[8], y[9], y[10], y[11], y[12] = 20, 60, 100, 60, 20
	for i := range y {
		data += formatSample(times[i], y[i])
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	inj, err := loadFIDInjection(path, nil, 0)
	if err != nil {
		t.Fatalf("loadFIDInjection: %v", err)
	}
	if inj.SampleName != "run_A1" || inj.PlatePosition() != "A1" {
		t.Errorf("unexpected identity %q / %q", inj.SampleName, inj.PlatePosition())
	}
	if inj.Peaks.Len() != 1 {
		t.Fatalf("expected 1 peak, got %d", inj.Peaks.Len())
	}
	if rt := inj.Peaks.All()[0].RT; rt != 0.1 {
		t.Errorf("expected peak at 0.1 min, got %f", rt)
	}
}

func formatSample(t, v float64) string {
	return fmt.Sprintf("%g,%g\n", t, v)
}
