package plate

import (
	"math"

	"github.com/pkg/errors"
)

// WellResult is the outcome of matching and quantification for one well.
// Numeric modes fill Quantity and leave Class empty; qualitative (MS-only)
// modes fill Class and leave Quantity NaN. RTMS and RTFID are NaN when the
// corresponding modality produced no match.
type WellResult struct {
	Quantity float64
	Class    string
	RTMS     float64
	RTFID    float64
	Analyte  string
}

// MissingResult is the defined missing-value contract for a well with no
// match: NaN quantity, NaN retention times, empty analyte label.
func MissingResult() WellResult {
	return WellResult{
		Quantity: math.NaN(),
		RTMS:     math.NaN(),
		RTFID:    math.NaN(),
	}
}

// Cell is the structured numeric view of one well for programmatic
// consumption.
type Cell struct {
	Quantity float64
	Class    string
	RTMS     float64
	RTFID    float64
}

// Grid holds the complete plate's results, addressable by row and column.
// Wells never written stay at the missing-value cell.
type Grid struct {
	rows, cols int
	set        map[string]WellResult
}

// NewGrid creates an empty rows x cols grid. Rows are labeled alphabetically
// from 'A' and are limited to 26.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || rows > maxRows || cols < 1 {
		return nil, errors.Errorf("plate: unsupported grid dimensions %dx%d", rows, cols)
	}
	return &Grid{rows: rows, cols: cols, set: make(map[string]WellResult)}, nil
}

// Shape returns the grid dimensions.
func (g *Grid) Shape() (rows, cols int) { return g.rows, g.cols }

// Set stores the result for a well.
func (g *Grid) Set(key string, res WellResult) error {
	row, col, err := ParseWell(key)
	if err != nil {
		return err
	}
	if row >= g.rows || col >= g.cols {
		return errors.Errorf("plate: well %s outside %dx%d grid", key, g.rows, g.cols)
	}
	g.set[FormatWell(row, col)] = res
	return nil
}

// At returns the result for a well. ok is false when the well was never
// written; the returned result is then the missing-value cell.
func (g *Grid) At(row, col int) (WellResult, bool) {
	res, ok := g.set[FormatWell(row, col)]
	if !ok {
		return MissingResult(), false
	}
	return res, true
}

// Table returns the structured (quantity, rt_ms, rt_fid) view of the whole
// plate, row-major. Unset wells propagate as NaN cells.
func (g *Grid) Table() [][]Cell {
	table := make([][]Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		table[r] = make([]Cell, g.cols)
		for c := 0; c < g.cols; c++ {
			res, _ := g.At(r, c)
			table[r][c] = Cell{
				Quantity: res.Quantity,
				Class:    res.Class,
				RTMS:     res.RTMS,
				RTFID:    res.RTFID,
			}
		}
	}
	return table
}
