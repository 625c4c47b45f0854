package peaks

// Trace is the intensity of a single monitored m/z channel, sampled on the
// same time base as the primary signal.
type Trace struct {
	Mz     float64
	Intens []float64
}

// ExtractSpectra reconstructs a mass spectrum for every primary peak by
// peak-picking each ion trace independently and attributing trace peaks that
// lie within the attribution window of a primary peak index.
//
// The stored value is the trace intensity at the primary peak's index, not
// at the trace peak's own index, so all channel intensities stay
// time-aligned with the primary chromatogram. The returned slice is parallel
// to peakIndices; a primary peak no trace contributes to gets an empty map.
func ExtractSpectra(traces []Trace, peakIndices []int, s Settings) []map[float64]float64 {
	r := s.withDefaults(Signal{})
	return extractSpectra(traces, peakIndices, r)
}

func extractSpectra(traces []Trace, peakIndices []int, r resolved) []map[float64]float64 {
	spectra := make([]map[float64]float64, len(peakIndices))
	for i := range spectra {
		spectra[i] = make(map[float64]float64)
	}
	for _, tr := range traces {
		hits := traceMaxima(tr.Intens, r.traceProminence)
		if len(hits) == 0 {
			continue
		}
		for pi, primary := range peakIndices {
			for _, h := range hits {
				if abs(h-primary) <= r.traceTol {
					spectra[pi][tr.Mz] = tr.Intens[primary]
					break
				}
			}
		}
	}
	return spectra
}

// traceMaxima picks local maxima of a trace under a prominence threshold
// only; height and width constraints do not apply to ion traces.
func traceMaxima(y []float64, minProm float64) []int {
	var hits []int
	for _, idx := range localMaxima(y) {
		prom, _, _ := prominence(y, idx)
		if prom >= minProm {
			hits = append(hits, idx)
		}
	}
	return hits
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
