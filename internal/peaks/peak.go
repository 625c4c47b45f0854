package peaks

import (
	"math"
	"sort"
)

// SpectrumLine is one (m/z, intensity) pair of a peak's mass spectrum.
// RelIntens is normalized to the strongest line of the same spectrum x 100.
type SpectrumLine struct {
	Mz        float64
	Intens    float64
	RelIntens float64
}

// Peak is a detected chromatographic peak. Detection attributes are fixed at
// creation; only Flag and Analyte may be assigned later, when a peak is
// identified as a particular compound or as the internal standard.
type Peak struct {
	RT          float64 // minutes, rounded to 3 decimals
	Height      float64
	Width       float64 // minutes
	LeftBorder  float64 // minutes
	RightBorder float64 // minutes
	Area        float64
	Spectrum    []SpectrumLine // sorted by m/z; nil for FID peaks

	Flag    string // e.g. "standard"
	Analyte string // label of the matched analyte, if any
}

// StandardFlag marks a peak as the internal standard.
const StandardFlag = "standard"

// roundRT rounds a retention time to the precision peaks are keyed by.
func roundRT(rt float64) float64 {
	return math.Round(rt*1000) / 1000
}

// newSpectrum normalizes a raw m/z -> intensity mapping into sorted spectrum
// lines. An empty mapping yields nil: a peak without attributed channels has
// no relative intensities and must not trip the maximum-value normalization.
func newSpectrum(raw map[float64]float64) []SpectrumLine {
	if len(raw) == 0 {
		return nil
	}
	max := 0.0
	for _, v := range raw {
		if v > max {
			max = v
		}
	}
	lines := make([]SpectrumLine, 0, len(raw))
	for mz, v := range raw {
		rel := 0.0
		if max > 0 {
			rel = v / max * 100
		}
		lines = append(lines, SpectrumLine{Mz: mz, Intens: v, RelIntens: rel})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Mz < lines[j].Mz })
	return lines
}

// newPeak assembles the immutable peak record from a picked candidate and
// its (possibly empty) raw spectrum.
func newPeak(c Candidate, raw map[float64]float64) *Peak {
	return &Peak{
		RT:          roundRT(c.RT),
		Height:      c.Height,
		Width:       c.Width,
		LeftBorder:  c.LeftBorder,
		RightBorder: c.RightBorder,
		Area:        c.Area,
		Spectrum:    newSpectrum(raw),
	}
}

// Detect runs the full detection pipeline on a signal: peak picking, and,
// when ion traces are supplied, mass spectrum extraction. Pass nil traces
// for single-channel (FID) signals.
func Detect(sig Signal, traces []Trace, s Settings) *Set {
	r := s.withDefaults(sig)
	cands := pick(sig, r)

	var spectra []map[float64]float64
	if len(traces) > 0 {
		indices := make([]int, len(cands))
		for i, c := range cands {
			indices[i] = c.Index
		}
		spectra = extractSpectra(traces, indices, r)
	}

	set := NewSet()
	for i, c := range cands {
		var raw map[float64]float64
		if spectra != nil {
			raw = spectra[i]
		}
		set.Insert(newPeak(c, raw))
	}
	return set
}
