package plate

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/gcdata"
)

// LoadLayoutCSV reads a layout from CSV records of the form
//
//	well,role,label,mz
//
// where role is "product" or "substrate". A header line is skipped when the
// first field is not a valid well key. Substrate rows for the same well
// accumulate in file order.
func LoadLayoutCSV(r io.Reader, rows, cols int) (*Layout, error) {
	layout, err := NewLayout(rows, cols)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "plate: reading layout")
		}
		line++
		if line == 1 {
			if _, _, err := ParseWell(rec[0]); err != nil {
				continue // header
			}
		}
		well := rec[0]
		role := strings.ToLower(strings.TrimSpace(rec[1]))
		label := strings.TrimSpace(rec[2])
		mz, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "plate: layout line %d: invalid m/z", line)
		}
		an := gcdata.Analyte{Label: label, Mz: mz}
		switch role {
		case "product":
			err = layout.SetProduct(well, an)
		case "substrate":
			err = layout.AddSubstrate(well, an)
		default:
			err = errors.Errorf("plate: layout line %d: unknown role %q", line, role)
		}
		if err != nil {
			return nil, err
		}
	}
	return layout, nil
}
