// Package analysis matches detected peaks against a plate layout and
// quantifies reaction outcomes, either across two modalities (MS
// identification confirmed and quantified on FID) or from MS data alone.
package analysis

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sverdin/gcplate/internal/gcdata"
	"github.com/sverdin/gcplate/internal/peaks"
	"github.com/sverdin/gcplate/internal/plate"
)

var (
	ErrUnknownMode      = errors.New("analysis: unknown quantification mode")
	ErrUnknownBasis     = errors.New("analysis: unknown quantification basis")
	ErrUnknownReference = errors.New("analysis: unknown quantification reference")
)

// Cross-modality plates are always full microtiter plates.
const (
	plateRows = 8
	plateCols = 12
)

// Mode selects the quantified property.
type Mode int

const (
	ModeYield Mode = iota
	ModeConversion
)

func (m Mode) String() string {
	if m == ModeConversion {
		return "conversion"
	}
	return "yield"
}

// ParseMode maps a mode name to its Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "yield":
		return ModeYield, nil
	case "conv", "conversion":
		return ModeConversion, nil
	default:
		return 0, errors.Wrap(ErrUnknownMode, s)
	}
}

// QuantityHeader is the report header for cross-modality results.
func (m Mode) QuantityHeader() string {
	if m == ModeConversion {
		return plate.HeaderConversion
	}
	return plate.HeaderYield
}

// EstimateHeader is the report header for MS-only results.
func (m Mode) EstimateHeader() string {
	if m == ModeConversion {
		return plate.HeaderMSConversion
	}
	return plate.HeaderMSYield
}

// Basis selects the peak attribute MS-only estimation works on.
type Basis int

const (
	BasisArea Basis = iota
	BasisHeight
)

// ParseBasis maps a basis name to its Basis value.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "area":
		return BasisArea, nil
	case "height":
		return BasisHeight, nil
	default:
		return 0, errors.Wrap(ErrUnknownBasis, s)
	}
}

// Reference selects the denominator of the MS-only ratio.
type Reference int

const (
	RelStandard Reference = iota
	RelAll
)

// ParseReference maps a reference name to its Reference value.
func ParseReference(s string) (Reference, error) {
	switch s {
	case "standard":
		return RelStandard, nil
	case "all":
		return RelAll, nil
	default:
		return 0, errors.Wrap(ErrUnknownReference, s)
	}
}

// Options configures a plate computation. The zero value quantifies yield
// by area relative to the internal standard with diagnostics discarded.
type Options struct {
	Mode Mode

	// SubstrateIndex selects which of a well's substrates conversion mode
	// tracks. Ignored in yield mode.
	SubstrateIndex int

	// Basis and Reference apply to MS-only estimation.
	Basis     Basis
	Reference Reference

	Logger logrus.FieldLogger
}

func (o Options) log() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) analyte(layout *plate.Layout, pos string) (gcdata.Analyte, bool) {
	if o.Mode == ModeConversion {
		return layout.Substrate(pos, o.SubstrateIndex)
	}
	return layout.Product(pos)
}

// QuantifyPlate matches every MS injection against the layout's expected
// analyte, confirms each match on the FID injection of the same sample via
// retention index, and quantifies the confirmed peak against the FID
// internal standard. In conversion mode the quantified percentage is
// complemented with 100, reading the remaining substrate as unconverted.
// Wells that fail to match in either modality receive the NaN missing-value
// result; a well failure never aborts the plate.
func QuantifyPlate(ms, fid *gcdata.Sequence, layout *plate.Layout, opts Options) (*plate.Grid, error) {
	if opts.Mode != ModeYield && opts.Mode != ModeConversion {
		return nil, ErrUnknownMode
	}
	log := opts.log()
	grid, err := plate.NewGrid(plateRows, plateCols)
	if err != nil {
		return nil, err
	}
	for _, name := range ms.Names() {
		msInj, _ := ms.Get(name)
		pos := msInj.PlatePosition()
		res, err := quantifyWell(msInj, fid, layout, opts, log)
		if err != nil {
			return nil, err
		}
		if err := grid.Set(pos, res); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

func quantifyWell(msInj *gcdata.Injection, fid *gcdata.Sequence, layout *plate.Layout,
	opts Options, log logrus.FieldLogger) (plate.WellResult, error) {
	pos := msInj.PlatePosition()
	an, ok := opts.analyte(layout, pos)
	if !ok {
		log.WithField("well", pos).Debug("no layout entry")
		return plate.MissingResult(), nil
	}
	fidInj, ok := fid.Get(msInj.SampleName)
	if !ok {
		return plate.WellResult{}, errors.Errorf("analysis: sample %s has no counterpart injection", msInj.SampleName)
	}
	match, ok := msInj.MatchMol(an)
	if !ok {
		return plate.MissingResult(), nil
	}
	confirmed, ok := fidInj.MatchRI(match.RI, match.Analyte)
	if !ok {
		return plate.MissingResult(), nil
	}
	q, err := fidInj.Quantify(confirmed.RT)
	if err != nil {
		log.WithField("sample", msInj.SampleName).WithError(err).Debug("quantification failed")
		return plate.MissingResult(), nil
	}
	if opts.Mode == ModeConversion {
		q = 100 - q
	}
	return plate.WellResult{Quantity: q, RTMS: match.RT, RTFID: confirmed.RT, Analyte: an.Label}, nil
}

// EstimatePlate roughly estimates yield or conversion from MS data alone,
// for reaction discovery or to reduce FID measurements. The matched peak's
// height or area is set in ratio to the internal standard or to the sum
// over all peaks, then classified into a qualitative bin. The grid takes
// the layout's shape. Wells without a matching peak receive the NaN
// missing-value result; wells without a standard (when the standard is the
// reference) are left out entirely.
func EstimatePlate(ms *gcdata.Sequence, layout *plate.Layout, opts Options) (*plate.Grid, error) {
	if opts.Mode != ModeYield && opts.Mode != ModeConversion {
		return nil, ErrUnknownMode
	}
	if opts.Basis != BasisArea && opts.Basis != BasisHeight {
		return nil, ErrUnknownBasis
	}
	if opts.Reference != RelStandard && opts.Reference != RelAll {
		return nil, ErrUnknownReference
	}
	log := opts.log()
	grid, err := plate.NewGrid(layout.Shape())
	if err != nil {
		return nil, err
	}
	for _, name := range ms.Names() {
		msInj, _ := ms.Get(name)
		pos := msInj.PlatePosition()
		an, ok := opts.analyte(layout, pos)
		if !ok {
			log.WithField("well", pos).Debug("no layout entry")
			if err := grid.Set(pos, plate.MissingResult()); err != nil {
				return nil, err
			}
			continue
		}
		match, ok := msInj.MatchMol(an)
		if !ok {
			if err := grid.Set(pos, plate.MissingResult()); err != nil {
				return nil, err
			}
			continue
		}

		var reference float64
		switch opts.Reference {
		case RelAll:
			for _, p := range msInj.Peaks.All() {
				reference += basisValue(p, opts.Basis)
			}
		case RelStandard:
			std, ok := msInj.Peaks.Flagged(peaks.StandardFlag)
			if !ok {
				log.WithField("sample", msInj.SampleName).Warn("no standard found, skipping well")
				continue
			}
			reference = basisValue(std, opts.Basis)
		}
		ratio := basisValue(match.Peak, opts.Basis) / reference * 100
		if opts.Mode == ModeConversion {
			ratio = 100 - ratio
		}
		log.WithFields(logrus.Fields{
			"sample": msInj.SampleName,
			"ratio":  ratio,
			"rt":     match.RT,
			"mz":     an.Mz,
		}).Debug("ms estimate")
		res := plate.WellResult{
			Quantity: math.NaN(),
			Class:    Classify(ratio),
			RTMS:     match.RT,
			RTFID:    math.NaN(),
			Analyte:  an.Label,
		}
		if err := grid.Set(pos, res); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

func basisValue(p *peaks.Peak, b Basis) float64 {
	if b == BasisHeight {
		return p.Height
	}
	return p.Area
}

// Classify bins a percentage ratio into a qualitative estimate. The bins
// partition [0, 100] with upper-inclusive boundaries at 70, 50, 20 and 5.
func Classify(ratio float64) string {
	switch {
	case ratio >= 70:
		return "excellent"
	case ratio >= 50:
		return "good"
	case ratio >= 20:
		return "fair"
	case ratio >= 5:
		return "poor"
	default:
		return "trace"
	}
}

// QuantifyAnalyte quantifies the analyte eluting at rt in every injection
// of a FID sequence. The result maps plate position (or sample name for
// injections without one) to the quantified percentage; injections without
// a matching peak or without a standard report zero.
func QuantifyAnalyte(fid *gcdata.Sequence, rt float64, an *gcdata.Analyte) map[string]float64 {
	out := make(map[string]float64, fid.Len())
	for _, name := range fid.Names() {
		inj, _ := fid.Get(name)
		var q float64
		if p, ok := inj.FlagPeak(rt, "analyte", an); ok {
			if v, err := inj.Quantify(p.RT); err == nil {
				q = v
			}
		}
		out[inj.PlatePosition()] = q
	}
	return out
}
