// Package gcdata models GC injections and sequences: per-injection peak
// collections, m/z based analyte matching on MS data, retention-index based
// confirmation and internal-standard quantification on FID data.
package gcdata

// Analyte is a chemical species of interest: an expected product, a
// substrate, or an internal standard. Mz is the m/z of the ion looked for in
// mass spectra (typically the molecular ion).
type Analyte struct {
	Label string
	Mz    float64
}

// IsZero reports whether the analyte is unset.
func (a Analyte) IsZero() bool { return a.Label == "" && a.Mz == 0 }
