package mzdata

import (
	"math"
	"sort"

	"github.com/sverdin/gcplate/internal/peaks"
)

// TIC assembles the total ion current chromatogram, one sample per scan,
// with retention times in minutes.
func (r *Run) TIC() (peaks.Signal, error) {
	n := r.NumScans()
	if n == 0 {
		return peaks.Signal{}, ErrNoScans
	}
	sig := peaks.Signal{
		Times:  make([]float64, n),
		Intens: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		rt, err := r.RetentionTime(i)
		if err != nil {
			return peaks.Signal{}, err
		}
		tic, err := r.TotalIonCurrent(i)
		if err != nil {
			return peaks.Signal{}, err
		}
		sig.Times[i] = rt
		sig.Intens[i] = tic
	}
	return sig, nil
}

// ScanRate estimates the acquisition rate in minutes per scan from the
// first two retention times.
func (r *Run) ScanRate() (float64, error) {
	if r.NumScans() < 2 {
		return 0, ErrNoScans
	}
	t0, err := r.RetentionTime(0)
	if err != nil {
		return 0, err
	}
	t1, err := r.RetentionTime(1)
	if err != nil {
		return 0, err
	}
	return t1 - t0, nil
}

// IonTraces bins every scan's spectrum to nominal (unit) masses and
// assembles one intensity trace per observed mass across the whole run.
// Traces whose maximum intensity stays below minAbundance are dropped,
// which keeps baseline noise channels out of spectrum extraction. The
// result is sorted by m/z.
func (r *Run) IonTraces(minAbundance float64) ([]peaks.Trace, error) {
	n := r.NumScans()
	if n == 0 {
		return nil, ErrNoScans
	}
	byMass := make(map[float64][]float64)
	for i := 0; i < n; i++ {
		points, err := r.Scan(i)
		if err != nil {
			return nil, err
		}
		for _, p := range points {
			mass := math.Round(p.Mz)
			trace, ok := byMass[mass]
			if !ok {
				trace = make([]float64, n)
				byMass[mass] = trace
			}
			trace[i] += p.Intens
		}
	}

	traces := make([]peaks.Trace, 0, len(byMass))
	for mass, intens := range byMass {
		max := 0.0
		for _, v := range intens {
			if v > max {
				max = v
			}
		}
		if max < minAbundance {
			continue
		}
		traces = append(traces, peaks.Trace{Mz: mass, Intens: intens})
	}
	sort.Slice(traces, func(i, j int) bool { return traces[i].Mz < traces[j].Mz })
	return traces, nil
}
