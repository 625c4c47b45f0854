// Package plate models microplate layouts and assembles per-well results
// into a rectangular grid with a CSV report surface.
package plate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// maxRows bounds alphabetic row labeling ('A'..'Z').
const maxRows = 26

// ParseWell splits a well key like "A1" or "H12" into zero-based row and
// column indices.
func ParseWell(key string) (row, col int, err error) {
	key = strings.TrimSpace(key)
	if len(key) < 2 {
		return 0, 0, errors.Errorf("plate: invalid well key %q", key)
	}
	r := key[0]
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0, 0, errors.Errorf("plate: invalid row letter in well key %q", key)
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 1 {
		return 0, 0, errors.Errorf("plate: invalid column number in well key %q", key)
	}
	return int(r - 'A'), n - 1, nil
}

// FormatWell renders zero-based row and column indices as a well key.
func FormatWell(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}
