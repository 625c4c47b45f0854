package plate

import (
	"github.com/pkg/errors"

	"github.com/sverdin/gcplate/internal/gcdata"
)

// Layout describes, for each well of a plate, the expected product and any
// number of substrates (selectable by index for multi-substrate conversion
// tracking).
type Layout struct {
	rows, cols int
	products   map[string]gcdata.Analyte
	substrates map[string][]gcdata.Analyte
}

// NewLayout creates an empty layout of the given dimensions. Rows are
// labeled alphabetically from 'A' and are limited to 26.
func NewLayout(rows, cols int) (*Layout, error) {
	if rows < 1 || rows > maxRows || cols < 1 {
		return nil, errors.Errorf("plate: unsupported layout dimensions %dx%d", rows, cols)
	}
	return &Layout{
		rows:       rows,
		cols:       cols,
		products:   make(map[string]gcdata.Analyte),
		substrates: make(map[string][]gcdata.Analyte),
	}, nil
}

// Shape returns the layout dimensions.
func (l *Layout) Shape() (rows, cols int) { return l.rows, l.cols }

func (l *Layout) checkWell(key string) (string, error) {
	row, col, err := ParseWell(key)
	if err != nil {
		return "", err
	}
	if row >= l.rows || col >= l.cols {
		return "", errors.Errorf("plate: well %s outside %dx%d layout", key, l.rows, l.cols)
	}
	return FormatWell(row, col), nil
}

// SetProduct assigns the expected product of a well.
func (l *Layout) SetProduct(key string, an gcdata.Analyte) error {
	k, err := l.checkWell(key)
	if err != nil {
		return err
	}
	l.products[k] = an
	return nil
}

// AddSubstrate appends a substrate to a well. Substrates keep insertion
// order and are addressed by index.
func (l *Layout) AddSubstrate(key string, an gcdata.Analyte) error {
	k, err := l.checkWell(key)
	if err != nil {
		return err
	}
	l.substrates[k] = append(l.substrates[k], an)
	return nil
}

// Product returns the expected product of a well.
func (l *Layout) Product(key string) (gcdata.Analyte, bool) {
	an, ok := l.products[key]
	return an, ok
}

// Substrate returns the substrate of a well at the given index.
func (l *Layout) Substrate(key string, index int) (gcdata.Analyte, bool) {
	subs := l.substrates[key]
	if index < 0 || index >= len(subs) {
		return gcdata.Analyte{}, false
	}
	return subs[index], true
}
