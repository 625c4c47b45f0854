// Package peaks detects chromatographic peaks in time/intensity signals.
//
// A Signal is picked for local maxima under height, prominence and width
// constraints. For MS signals, per-m/z ion traces are correlated against the
// picked peaks to reconstruct a mass spectrum for each peak.
package peaks

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Signal is an ordered sequence of (time, intensity) samples.
// Times are in minutes, intensities in arbitrary units >= 0.
// Signals are read-only once acquired.
type Signal struct {
	Times  []float64
	Intens []float64
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Times) }

// minPositive returns the smallest strictly positive intensity.
// ok is false when the signal has no positive sample.
func minPositive(y []float64) (float64, bool) {
	min := math.MaxFloat64
	ok := false
	for _, v := range y {
		if v > 0 && v < min {
			min = v
			ok = true
		}
	}
	return min, ok
}

func median(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	c := make([]float64, len(y))
	copy(c, y)
	sort.Float64s(c)
	return stat.Quantile(0.5, stat.Empirical, c, nil)
}

// nearestIndex returns the index of the sample whose time is closest to t.
// Times must be sorted ascending.
func nearestIndex(times []float64, t float64) int {
	i := sort.SearchFloat64s(times, t)
	if i == len(times) {
		return len(times) - 1
	}
	if i > 0 && t-times[i-1] <= times[i]-t {
		return i - 1
	}
	return i
}
