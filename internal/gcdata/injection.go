package gcdata

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/peaks"
)

// Matching tolerances applied when the corresponding Injection field is zero.
const (
	defaultMzTol          = 0.5 // m/z window for spectrum line matching
	defaultMinRel         = 5.0 // minimum relative intensity of a matching line
	defaultRITol          = 10  // retention index window for FID confirmation
	defaultRTTol          = 0.1 // minutes, for direct RT-based peak lookup
	defaultResponseFactor = 1.0
)

// Errors returned by quantification.
var (
	ErrNoStandard = errors.New("gcdata: no internal standard peak flagged")
	ErrNoPeak     = errors.New("gcdata: no peak at given retention time")
)

// RIAnchor is one point of a retention-index calibration ladder, typically
// an n-alkane peak with RI = 100 x carbon count.
type RIAnchor struct {
	RT float64
	RI float64
}

// Injection is a single chromatographic run: a peak collection plus sample
// identity. PlatePos is the well key ("A1"); it is empty for runs that are
// not plate based, in which case SampleName identifies the run.
type Injection struct {
	SampleName string
	PlatePos   string
	Peaks      *peaks.Set

	// MzTol, MinRelIntens, RITol and RTTol override the default matching
	// tolerances when non-zero.
	MzTol        float64
	MinRelIntens float64
	RITol        float64
	RTTol        float64

	// ResponseFactor corrects detector response in internal-standard
	// quantification. 0 means 1.
	ResponseFactor float64

	ladder []RIAnchor
}

// NewInjection wraps a detected peak set with sample identity.
func NewInjection(sampleName, platePos string, set *peaks.Set) *Injection {
	if set == nil {
		set = peaks.NewSet()
	}
	return &Injection{SampleName: sampleName, PlatePos: platePos, Peaks: set}
}

// PlatePosition returns the well key of the injection, or the sample name
// when the injection is not plate based.
func (inj *Injection) PlatePosition() string {
	if inj.PlatePos != "" {
		return inj.PlatePos
	}
	return inj.SampleName
}

// SetLadder installs the retention-index calibration anchors. At least two
// anchors are required for interpolation.
func (inj *Injection) SetLadder(anchors []RIAnchor) error {
	if len(anchors) < 2 {
		return errors.New("gcdata: retention index ladder needs at least 2 anchors")
	}
	l := make([]RIAnchor, len(anchors))
	copy(l, anchors)
	sort.Slice(l, func(i, j int) bool { return l[i].RT < l[j].RT })
	inj.ladder = l
	return nil
}

// RI converts a retention time to a retention index by linear interpolation
// between the bracketing ladder anchors (extrapolating beyond the ends).
// ok is false when no ladder is installed.
func (inj *Injection) RI(rt float64) (float64, bool) {
	l := inj.ladder
	if len(l) < 2 {
		return math.NaN(), false
	}
	i := sort.Search(len(l), func(i int) bool { return l[i].RT >= rt })
	if i == 0 {
		i = 1
	}
	if i == len(l) {
		i = len(l) - 1
	}
	a, b := l[i-1], l[i]
	frac := (rt - a.RT) / (b.RT - a.RT)
	return a.RI + frac*(b.RI-a.RI), true
}

// MolMatch is the result of matching an analyte against an MS peak
// collection.
type MolMatch struct {
	Peak    *peaks.Peak
	RT      float64
	RI      float64 // NaN when the injection has no RI ladder
	Analyte Analyte
}

// MatchMol searches the injection's peaks, in retention time order, for one
// whose mass spectrum contains the analyte's m/z. A spectrum line matches
// when it lies within the m/z tolerance and carries at least the minimum
// relative intensity. Returns false when no peak matches.
func (inj *Injection) MatchMol(an Analyte) (MolMatch, bool) {
	mzTol := inj.MzTol
	if mzTol == 0 {
		mzTol = defaultMzTol
	}
	minRel := inj.MinRelIntens
	if minRel == 0 {
		minRel = defaultMinRel
	}
	for _, p := range inj.Peaks.All() {
		if !spectrumContains(p.Spectrum, an.Mz, mzTol, minRel) {
			continue
		}
		p.Analyte = an.Label
		ri, ok := inj.RI(p.RT)
		if !ok {
			ri = math.NaN()
		}
		return MolMatch{Peak: p, RT: p.RT, RI: ri, Analyte: an}, true
	}
	return MolMatch{}, false
}

// spectrumContains checks a sorted spectrum for a line near mz.
func spectrumContains(spectrum []peaks.SpectrumLine, mz, tol, minRel float64) bool {
	i := sort.Search(len(spectrum), func(i int) bool { return spectrum[i].Mz >= mz-tol })
	for ; i < len(spectrum) && spectrum[i].Mz <= mz+tol; i++ {
		if spectrum[i].RelIntens >= minRel {
			return true
		}
	}
	return false
}

// MatchRI locates the peak whose retention index is closest to ri, within
// the RI tolerance. This is the FID-side confirmation of an MS match. The
// matched peak is labeled with the analyte. Returns false when no peak
// qualifies or the injection has no RI ladder.
func (inj *Injection) MatchRI(ri float64, an Analyte) (*peaks.Peak, bool) {
	if math.IsNaN(ri) {
		return nil, false
	}
	riTol := inj.RITol
	if riTol == 0 {
		riTol = defaultRITol
	}
	var best *peaks.Peak
	bestDist := riTol
	for _, p := range inj.Peaks.All() {
		pri, ok := inj.RI(p.RT)
		if !ok {
			return nil, false
		}
		d := math.Abs(pri - ri)
		if d <= bestDist {
			best = p
			bestDist = d
		}
	}
	if best == nil {
		return nil, false
	}
	best.Analyte = an.Label
	return best, true
}

// FlagPeak marks the peak nearest to rt with the given flag (for example
// peaks.StandardFlag) and, optionally, an analyte label. Detection
// attributes stay untouched.
func (inj *Injection) FlagPeak(rt float64, flag string, an *Analyte) (*peaks.Peak, bool) {
	rtTol := inj.RTTol
	if rtTol == 0 {
		rtTol = defaultRTTol
	}
	p, ok := inj.Peaks.Nearest(rt, rtTol)
	if !ok {
		return nil, false
	}
	p.Flag = flag
	if an != nil {
		p.Analyte = an.Label
	}
	return p, true
}

// Quantify computes the area percentage of the peak at rt relative to the
// injection's internal standard, corrected by the response factor.
func (inj *Injection) Quantify(rt float64) (float64, error) {
	rtTol := inj.RTTol
	if rtTol == 0 {
		rtTol = defaultRTTol
	}
	target, ok := inj.Peaks.Nearest(rt, rtTol)
	if !ok {
		return 0, errors.Wrapf(ErrNoPeak, "rt %.3f", rt)
	}
	standard, ok := inj.Peaks.Flagged(peaks.StandardFlag)
	if !ok {
		return 0, errors.Wrapf(ErrNoStandard, "sample %s", inj.SampleName)
	}
	rf := inj.ResponseFactor
	if rf == 0 {
		rf = defaultResponseFactor
	}
	return target.Area / standard.Area * 100 * rf, nil
}
