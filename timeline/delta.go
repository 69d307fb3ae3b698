package timeline

import "sort"

// deltaMap accumulates net value changes per point. Contributions at the
// same point sum up; a net delta of exactly 0 leaves the function unchanged
// there.
type deltaMap map[float64]float64

func (dm deltaMap) contribute(point, delta float64) {
	dm[point] += delta
}

// contributeSegments re-derives a segment sequence as deltas: +value at the
// segment's own point, -value at the next segment's point. The last segment
// stays open.
func (dm deltaMap) contributeSegments(segs segments) {
	for idx, seg := range segs {
		dm.contribute(seg.Point, seg.Value)

		if idx+1 < len(segs) {
			dm.contribute(segs[idx+1].Point, -seg.Value)
		}
	}
}

func compileAdd(existing segments, from, to, amount float64) deltaMap {
	dm := make(deltaMap, len(existing)+2)
	dm.contributeSegments(existing)
	dm.contribute(from, amount)
	dm.contribute(to, -amount)

	return dm
}

// compileSet splices the range into a working sequence: segments left of
// from, then (from, amount), then (to, carry) where carry is the value the
// function held at to before the set, then segments right of to. The
// working sequence is strictly ascending by construction.
func compileSet(existing segments, from, to, amount float64) deltaMap {
	working := make(segments, 0, len(existing)+2)

	for _, seg := range existing {
		if seg.Point < from {
			working = append(working, seg)
		}
	}

	working = append(working, Segment{Point: from, Value: amount})

	var carry float64
	if idx := existing.search(to); idx >= 0 {
		carry = existing[idx].Value
	}

	working = append(working, Segment{Point: to, Value: carry})

	for _, seg := range existing {
		if seg.Point > to {
			working = append(working, seg)
		}
	}

	dm := make(deltaMap, len(working))
	dm.contributeSegments(working)

	return dm
}

// normalize walks the points in ascending order accumulating the running
// sum and emits the canonical segment list. Zero-delta points are skipped,
// as is a point whose sum equals the previous emitted value (float
// absorption). The first emitted value is its own nonzero delta, so no
// leading zeros survive, and merging equal neighbors collapses a trailing
// zero run to a single entry.
func (dm deltaMap) normalize() segments {
	points := make([]float64, 0, len(dm))
	for point := range dm {
		points = append(points, point)
	}

	sort.Float64s(points)

	segs := make(segments, 0, len(points))

	var cum float64

	for _, point := range points {
		delta := dm[point]
		cum += delta

		if delta == 0 {
			continue
		}

		if n := len(segs); n > 0 && segs[n-1].Value == cum {
			continue
		}

		segs = append(segs, Segment{Point: point, Value: cum})
	}

	return segs
}
