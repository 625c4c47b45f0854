package peaks

import "sort"

// RTTol is the default tolerance, in minutes, for retention-time keyed
// lookups. It is half the rounding unit of peak retention times, so two
// peaks that round apart never alias.
const RTTol = 0.0005

// Set is a collection of peaks ordered by retention time. Lookup is
// nearest-neighbor within a tolerance rather than exact-key, so peaks whose
// retention times round to the same value coexist instead of silently
// overwriting each other.
type Set struct {
	peaks []*Peak
}

// NewSet returns an empty peak set.
func NewSet() *Set { return &Set{} }

// Insert adds a peak, keeping the set ordered by retention time.
// Peaks with equal retention times are all retained.
func (s *Set) Insert(p *Peak) {
	i := sort.Search(len(s.peaks), func(i int) bool { return s.peaks[i].RT >= p.RT })
	s.peaks = append(s.peaks, nil)
	copy(s.peaks[i+1:], s.peaks[i:])
	s.peaks[i] = p
}

// Len returns the number of peaks in the set.
func (s *Set) Len() int { return len(s.peaks) }

// All returns the peaks in ascending retention time order.
// The returned slice is shared; callers must not modify it.
func (s *Set) All() []*Peak { return s.peaks }

// Nearest returns the peak whose retention time is closest to rt, provided
// it lies within tol minutes.
func (s *Set) Nearest(rt, tol float64) (*Peak, bool) {
	if len(s.peaks) == 0 {
		return nil, false
	}
	i := sort.Search(len(s.peaks), func(i int) bool { return s.peaks[i].RT >= rt })
	best := -1
	bestDist := tol
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(s.peaks) {
			continue
		}
		d := s.peaks[j].RT - rt
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			best = j
			bestDist = d
		}
	}
	if best < 0 {
		return nil, false
	}
	return s.peaks[best], true
}

// Flagged returns the first peak carrying the given flag, in retention time
// order.
func (s *Set) Flagged(flag string) (*Peak, bool) {
	for _, p := range s.peaks {
		if p.Flag == flag {
			return p, true
		}
	}
	return nil, false
}
