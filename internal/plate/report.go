package plate

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Report column headers shared by all modes.
const (
	HeaderRTMS    = "RT-MS [min]"
	HeaderRTFID   = "RT-FID [min]"
	HeaderAnalyte = "Analyte"
)

// Quantity column headers per quantification mode.
const (
	HeaderYield        = "Yield [%]"
	HeaderConversion   = "Conversion [%]"
	HeaderMSYield      = "MS Yield Estimate"
	HeaderMSConversion = "MS Conversion Estimate"
)

// WriteReport renders the human-readable report as delimited text: one row
// per resolved well, sorted by well position, with the mode-dependent
// quantity header. Wells never written to the grid are not reported.
func (g *Grid) WriteReport(w io.Writer, quantityHeader string) error {
	keys := make([]string, 0, len(g.set))
	for k := range g.set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, ci, _ := ParseWell(keys[i])
		rj, cj, _ := ParseWell(keys[j])
		if ri != rj {
			return ri < rj
		}
		return ci < cj
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"", quantityHeader, HeaderRTMS, HeaderRTFID, HeaderAnalyte}); err != nil {
		return errors.Wrap(err, "plate: writing report header")
	}
	for _, k := range keys {
		res := g.set[k]
		quantity := res.Class
		if quantity == "" {
			quantity = formatFloat(res.Quantity)
		}
		rec := []string{k, quantity, formatFloat(res.RTMS), formatFloat(res.RTFID), res.Analyte}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "plate: writing report row %s", k)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "plate: flushing report")
}

// formatFloat renders a value for the report; NaN becomes an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
