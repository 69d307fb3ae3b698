package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/cuserror"
)

// EncodeSegments renders segments as a compact json pair list, e.g.
// [[10,1],[30,0]]. An empty store encodes as [].
func EncodeSegments(segs []Segment) string {
	pairs := make([][]float64, 0, len(segs))
	for _, seg := range segs {
		pairs = append(pairs, []float64{seg.Point, seg.Value})
	}

	d, _ := json.Marshal(pairs)

	return string(d)
}

func DecodeSegments(payload string) ([]Segment, error) {
	var pairs [][]float64

	err := json.Unmarshal([]byte(payload), &pairs)
	if err != nil {
		return nil, cuserror.NewWithErrorMsg(fmt.Sprintf("bad segments payload: %v", err))
	}

	if pairs == nil {
		return nil, ErrBadData
	}

	segs := make([]Segment, 0, len(pairs))

	for idx, pair := range pairs {
		if len(pair) != 2 {
			return nil, ErrBadData
		}

		if idx > 0 && pair[0] <= segs[idx-1].Point {
			return nil, ErrBadData
		}

		segs = append(segs, Segment{Point: pair[0], Value: pair[1]})
	}

	return segs, nil
}

// DeserializeTimeline rebuilds a timeline from EncodeSegments output. The
// payload does not have to be canonical, the loaded segments are normalized
// on the way in.
func DeserializeTimeline(payload string, cache QueryCache, logger l.Wrapper) (Timeline, error) {
	segs, err := DecodeSegments(payload)
	if err != nil {
		return nil, err
	}

	impl := newTimeline(cache, logger)

	err = impl.load(segs)
	if err != nil {
		return nil, err
	}

	return impl, nil
}
