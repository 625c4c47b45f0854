package peaks

import "math"

// Default thresholds applied when the corresponding Settings field is zero.
const (
	defaultMinHeightFactor  = 50  // times the minimum positive intensity
	defaultProminenceFactor = 1   // times the median intensity
	defaultTraceProminence  = 220 // absolute, in trace intensity units
	defaultTraceTol         = 5   // samples
)

// Settings holds the peak detection parameters. The zero value of every
// field except ScanRate selects a default; defaults are resolved once per
// Pick/Detect call and never mutate the caller's value.
type Settings struct {
	// ScanRate is the sampling interval in minutes per sample. It is used
	// to convert sample-index widths and borders into time units.
	ScanRate float64

	// MinHeight is the minimum intensity of a candidate peak.
	// 0 selects 50x the minimum strictly positive intensity of the signal.
	MinHeight float64

	// ProminenceFactor scales the median intensity of the signal to obtain
	// the prominence threshold. 0 selects 1.
	ProminenceFactor float64

	// MinWidth is the minimum peak width in samples. Default 0.
	MinWidth float64

	// TraceProminence is the prominence threshold applied to individual
	// ion traces during mass spectrum extraction. 0 selects 220.
	TraceProminence float64

	// TraceTol is the attribution window, in samples, between a trace peak
	// and a primary peak. 0 selects 5.
	TraceTol int
}

// resolved carries the fully determined thresholds for one detection pass.
type resolved struct {
	scanRate        float64
	minHeight       float64
	prominence      float64
	minWidth        float64
	traceProminence float64
	traceTol        int
}

// withDefaults computes the effective thresholds for sig. Each default is
// evaluated exactly once per call.
func (s Settings) withDefaults(sig Signal) resolved {
	r := resolved{
		scanRate:        s.ScanRate,
		minHeight:       s.MinHeight,
		prominence:      s.ProminenceFactor,
		minWidth:        s.MinWidth,
		traceProminence: s.TraceProminence,
		traceTol:        s.TraceTol,
	}
	if r.minHeight == 0 {
		if mp, ok := minPositive(sig.Intens); ok {
			r.minHeight = mp * defaultMinHeightFactor
		} else {
			// No positive sample: nothing can qualify.
			r.minHeight = math.MaxFloat64
		}
	}
	if r.prominence == 0 {
		r.prominence = defaultProminenceFactor
	}
	r.prominence *= median(sig.Intens)
	if r.traceProminence == 0 {
		r.traceProminence = defaultTraceProminence
	}
	if r.traceTol == 0 {
		r.traceTol = defaultTraceTol
	}
	return r
}
