package timeline

import "sort"

type segments []Segment

// search returns the index of the last segment with Point <= at, or -1 when
// at precedes every point.
func (segs segments) search(at float64) int {
	idx := sort.Search(len(segs), func(i int) bool {
		return segs[i].Point > at
	})

	return idx - 1
}

func (segs segments) valueAt(at float64) float64 {
	idx := segs.search(at)
	if idx < 0 {
		return 0
	}

	return segs[idx].Value
}

func (segs segments) clone() []Segment {
	cloned := make([]Segment, len(segs))
	copy(cloned, segs)

	return cloned
}

// finite reports whether every value survived summation within float64
// range. Points never need checking, they are copied from validated input.
func (segs segments) finite() bool {
	for _, seg := range segs {
		if !isFinite(seg.Value) {
			return false
		}
	}

	return true
}
