package peaks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// traceWith builds an n-sample trace that rises to apex at the given index.
func traceWith(n int, mz float64, apex int, shape []float64) Trace {
	y := make([]float64, n)
	for i, v := range shape {
		j := apex - len(shape)/2 + i
		if j >= 0 && j < n {
			y[j] = v
		}
	}
	return Trace{Mz: mz, Intens: y}
}

func TestExtractSpectra(t *testing.T) {
	const n = 21
	primary := []int{10}

	traces := []Trace{
		// Apex at 12, within the +-5 window; intensity at the primary
		// index (10) is 300.
		traceWith(n, 91, 12, []float64{100, 300, 450, 500, 450, 300, 100}),
		// Apex at 2, outside the window.
		traceWith(n, 65, 2, []float64{50, 400, 50}),
		// Prominence below the trace threshold.
		traceWith(n, 39, 11, []float64{20, 100, 20}),
	}

	spectra := ExtractSpectra(traces, primary, Settings{})
	if len(spectra) != 1 {
		t.Fatalf("expected 1 spectrum, got %d", len(spectra))
	}
	want := map[float64]float64{91: 300}
	if diff := cmp.Diff(want, spectra[0]); diff != "" {
		t.Errorf("spectrum mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSpectraEmpty(t *testing.T) {
	spectra := ExtractSpectra(nil, []int{4, 9}, Settings{})
	if len(spectra) != 2 {
		t.Fatalf("expected 2 spectra, got %d", len(spectra))
	}
	for i, sp := range spectra {
		if len(sp) != 0 {
			t.Errorf("spectrum %d: expected empty, got %v", i, sp)
		}
	}
}

func TestNewSpectrumNormalization(t *testing.T) {
	lines := newSpectrum(map[float64]float64{91: 500, 65: 125, 39: 250})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// Sorted by m/z.
	want := []SpectrumLine{
		{Mz: 39, Intens: 250, RelIntens: 50},
		{Mz: 65, Intens: 125, RelIntens: 25},
		{Mz: 91, Intens: 500, RelIntens: 100},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("spectrum lines mismatch (-want +got):\n%s", diff)
	}
}

// A peak with no attributed channels must not trip the normalization.
func TestNewSpectrumEmptyGuard(t *testing.T) {
	if lines := newSpectrum(nil); lines != nil {
		t.Errorf("expected nil spectrum, got %v", lines)
	}
	if lines := newSpectrum(map[float64]float64{}); lines != nil {
		t.Errorf("expected nil spectrum, got %v", lines)
	}
}

func TestDetectAttachesSpectra(t *testing.T) {
	sig := trianglePeak()
	traces := []Trace{
		traceWith(sig.Len(), 91, 12, []float64{100, 300, 450, 500, 450, 300, 100}),
	}
	set := Detect(sig, traces, Settings{ScanRate: 0.01})
	if set.Len() != 1 {
		t.Fatalf("expected 1 peak, got %d", set.Len())
	}
	p := set.All()[0]
	if p.RT != 0.1 {
		t.Errorf("expected rt 0.1, got %f", p.RT)
	}
	if len(p.Spectrum) != 1 || p.Spectrum[0].Mz != 91 || p.Spectrum[0].RelIntens != 100 {
		t.Errorf("unexpected spectrum: %+v", p.Spectrum)
	}
}

func TestDetectFIDNoSpectra(t *testing.T) {
	set := Detect(trianglePeak(), nil, Settings{ScanRate: 0.01})
	if set.Len() != 1 {
		t.Fatalf("expected 1 peak, got %d", set.Len())
	}
	if set.All()[0].Spectrum != nil {
		t.Errorf("FID peak should have no spectrum")
	}
}
