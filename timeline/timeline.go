package timeline

import (
	"math"

	"github.com/sgostarter/i/l"
)

func NewTimeline(logger l.Wrapper) Timeline {
	return NewTimelineEx(nil, logger)
}

func NewTimelineWithCache(cfg CacheConfig, logger l.Wrapper) Timeline {
	return NewTimelineEx(NewMemQueryCache(cfg), logger)
}

func NewTimelineEx(cache QueryCache, logger l.Wrapper) Timeline {
	return newTimeline(cache, logger)
}

func newTimeline(cache QueryCache, logger l.Wrapper) *timelineImpl {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &timelineImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "timelineImpl")),
		cache:  cache,
	}
}

type timelineImpl struct {
	logger l.Wrapper
	cache  QueryCache

	segs segments
}

func (impl *timelineImpl) Add(from, to, amount float64) error {
	if err := checkRange(from, to, amount); err != nil {
		return err
	}

	segs := compileAdd(impl.segs, from, to, amount).normalize()
	if !segs.finite() {
		return ErrOverflow
	}

	impl.replace(segs)

	return nil
}

func (impl *timelineImpl) Set(from, to, amount float64) error {
	if err := checkRange(from, to, amount); err != nil {
		return err
	}

	segs := compileSet(impl.segs, from, to, amount).normalize()
	if !segs.finite() {
		return ErrOverflow
	}

	impl.replace(segs)

	return nil
}

func (impl *timelineImpl) ValueAt(at float64) (value float64, err error) {
	if !isFinite(at) {
		err = ErrInvalidRange

		return
	}

	if impl.cache != nil {
		if cached, exists := impl.cache.Get(at); exists {
			value = cached

			return
		}
	}

	value = impl.segs.valueAt(at)

	if impl.cache != nil {
		impl.cache.Put(at, value)
	}

	return
}

func (impl *timelineImpl) SegmentContaining(at float64) (span SegmentSpan, exists bool, err error) {
	if !isFinite(at) {
		err = ErrInvalidRange

		return
	}

	idx := impl.segs.search(at)
	if idx < 0 {
		return
	}

	seg := impl.segs[idx]
	if seg.Value == 0 && idx == len(impl.segs)-1 {
		// at or past the trailing zero, no activity there
		return
	}

	span = SegmentSpan{Start: seg.Point, End: math.Inf(1), Value: seg.Value}
	if idx+1 < len(impl.segs) {
		span.End = impl.segs[idx+1].Point
	}

	exists = true

	return
}

func (impl *timelineImpl) Segments() []Segment {
	return impl.segs.clone()
}

func (impl *timelineImpl) Serialize() string {
	return EncodeSegments(impl.segs)
}

func (impl *timelineImpl) Reset() {
	impl.replace(nil)
}

// load rebuilds the store from an arbitrary segment sequence, normalizing
// it so the store stays canonical whatever the input.
func (impl *timelineImpl) load(segs []Segment) error {
	dm := make(deltaMap, len(segs)+1)
	dm.contributeSegments(segs)

	normalized := dm.normalize()
	if !normalized.finite() {
		return ErrOverflow
	}

	impl.replace(normalized)

	impl.logger.WithFields(l.IntField("segments", len(impl.segs))).Debug("timeline loaded")

	return nil
}

func (impl *timelineImpl) replace(segs segments) {
	impl.segs = segs

	if impl.cache != nil {
		impl.cache.InvalidateAll()
	}
}

//
//
//

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkRange(from, to, amount float64) error {
	if !isFinite(from) || !isFinite(to) || !isFinite(amount) {
		return ErrInvalidRange
	}

	if from >= to {
		return ErrInvalidRange
	}

	return nil
}
