package peaks

import (
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Candidate is a raw picked peak before entity assembly. Widths and borders
// are measured at full relative height (base to base), which keeps
// overlapping peaks apart for area integration.
type Candidate struct {
	Index       int     // sample index of the maximum
	RT          float64 // minutes
	Height      float64
	Width       float64 // minutes
	LeftBorder  float64 // minutes
	RightBorder float64 // minutes
	Area        float64
}

// Pick returns all local maxima of sig that satisfy the minimum height,
// prominence and width constraints simultaneously, ordered by time.
// A signal with no qualifying sample yields an empty result.
func Pick(sig Signal, s Settings) []Candidate {
	r := s.withDefaults(sig)
	return pick(sig, r)
}

func pick(sig Signal, r resolved) []Candidate {
	n := sig.Len()
	if n < 3 {
		return nil
	}
	y := sig.Intens

	var cands []Candidate
	for _, idx := range localMaxima(y) {
		if y[idx] < r.minHeight {
			continue
		}
		prom, leftBase, rightBase := prominence(y, idx)
		if prom < r.prominence {
			continue
		}
		width, leftIP, rightIP := widthAt(y, idx, prom, leftBase, rightBase)
		if width < r.minWidth {
			continue
		}

		leftT := leftIP*r.scanRate + sig.Times[0]
		rightT := rightIP*r.scanRate + sig.Times[0]
		if last := sig.Times[n-1]; rightT > last {
			rightT = last
		}

		cands = append(cands, Candidate{
			Index:       idx,
			RT:          sig.Times[idx],
			Height:      y[idx],
			Width:       width * r.scanRate,
			LeftBorder:  leftT,
			RightBorder: rightT,
			Area:        borderArea(sig, leftT, rightT),
		})
	}
	return cands
}

// localMaxima returns indices of strict local maxima. A flat top counts as
// one maximum located at the middle of the plateau.
func localMaxima(y []float64) []int {
	var idx []int
	i := 1
	last := len(y) - 1
	for i < last {
		if y[i-1] < y[i] {
			ahead := i + 1
			for ahead < last && y[ahead] == y[i] {
				ahead++
			}
			if y[ahead] < y[i] {
				idx = append(idx, (i+ahead-1)/2)
				i = ahead
				continue
			}
		}
		i++
	}
	return idx
}

// prominence computes the vertical drop of a peak: its height above the
// higher of the two minima separating it from higher terrain (or the signal
// ends). The returned bases are the positions of those minima.
func prominence(y []float64, peak int) (prom float64, leftBase, rightBase int) {
	h := y[peak]

	leftBase = peak
	leftMin := h
	for i := peak - 1; i >= 0 && y[i] <= h; i-- {
		if y[i] < leftMin {
			leftMin = y[i]
			leftBase = i
		}
	}

	rightBase = peak
	rightMin := h
	for i := peak + 1; i < len(y) && y[i] <= h; i++ {
		if y[i] < rightMin {
			rightMin = y[i]
			rightBase = i
		}
	}

	return h - math.Max(leftMin, rightMin), leftBase, rightBase
}

// widthAt measures the peak width at its base (evaluation height is the peak
// height minus its full prominence). The crossing positions are linearly
// interpolated between samples, so they are fractional sample offsets.
func widthAt(y []float64, peak int, prom float64, leftBase, rightBase int) (width, leftIP, rightIP float64) {
	height := y[peak] - prom

	i := peak
	for i > leftBase && y[i] > height {
		i--
	}
	leftIP = float64(i)
	if y[i] < height {
		leftIP += (height - y[i]) / (y[i+1] - y[i])
	}

	j := peak
	for j < rightBase && y[j] > height {
		j++
	}
	rightIP = float64(j)
	if y[j] < height {
		rightIP -= (height - y[j]) / (y[j-1] - y[j])
	}

	return rightIP - leftIP, leftIP, rightIP
}

// borderArea integrates the intensity between the two border times using
// composite Simpson's rule over the nearest sample indices. Samples are
// uniformly spaced, so integration runs over the sample index axis.
func borderArea(sig Signal, leftT, rightT float64) float64 {
	lo := nearestIndex(sig.Times, leftT)
	hi := nearestIndex(sig.Times, rightT)
	if hi <= lo {
		return 0
	}
	n := hi - lo + 1
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(lo + i)
	}
	ys := sig.Intens[lo : hi+1]
	if n < 3 {
		return integrate.Trapezoidal(xs, ys)
	}
	return integrate.Simpsons(xs, ys)
}
