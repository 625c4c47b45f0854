package gcdata

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/peaks"
)

// ReadFIDSignal reads a FID chromatogram from two-column delimited text,
// time (minutes) and intensity. A single leading header line is skipped
// when its first field is not numeric.
func ReadFIDSignal(r io.Reader) (peaks.Signal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	var sig peaks.Signal
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return peaks.Signal{}, errors.Wrap(err, "gcdata: reading signal")
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return peaks.Signal{}, errors.Wrapf(err, "gcdata: parsing time %q", rec[0])
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return peaks.Signal{}, errors.Wrapf(err, "gcdata: parsing intensity %q", rec[1])
		}
		first = false
		sig.Times = append(sig.Times, t)
		sig.Intens = append(sig.Intens, v)
	}
	if sig.Len() == 0 {
		return peaks.Signal{}, errors.New("gcdata: signal is empty")
	}
	return sig, nil
}

// ReadLadderCSV reads alkane anchors from two-column delimited text,
// retention time (minutes) and retention index. A single leading header
// line is skipped when its first field is not numeric.
func ReadLadderCSV(r io.Reader) ([]RIAnchor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	var anchors []RIAnchor
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "gcdata: reading ladder")
		}
		rt, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, errors.Wrapf(err, "gcdata: parsing retention time %q", rec[0])
		}
		ri, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "gcdata: parsing retention index %q", rec[1])
		}
		first = false
		anchors = append(anchors, RIAnchor{RT: rt, RI: ri})
	}
	return anchors, nil
}
