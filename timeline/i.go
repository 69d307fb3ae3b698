package timeline

import (
	"math"
	"time"
)

const (
	DefaultCacheMaxEntries = 1000
	DefaultCacheTTL        = 5 * time.Second
)

// Segment is one breakpoint of the piecewise-constant function: the value
// holds from Point until the next segment's point, or forever if last.
type Segment struct {
	Point float64 `yaml:"point" json:"point"`
	Value float64 `yaml:"value" json:"value"`
}

// SegmentSpan is the half-open range [Start, End) a query point fell into.
// End is +Inf when the span is the last one.
type SegmentSpan struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
	Value float64 `yaml:"value" json:"value"`
}

func (span SegmentSpan) Unbounded() bool {
	return math.IsInf(span.End, 1)
}

type CacheConfig struct {
	MaxEntries int           `yaml:"maxEntries" json:"maxEntries"`
	TTL        time.Duration `yaml:"ttl" json:"ttl"`
}

type Timeline interface {
	Add(from, to, amount float64) error
	Set(from, to, amount float64) error
	ValueAt(at float64) (value float64, err error)
	SegmentContaining(at float64) (span SegmentSpan, exists bool, err error)
	Segments() []Segment
	Serialize() string
	Reset()
}

// QueryCache memoizes ValueAt results. Presence of a cache never changes a
// returned value; the timeline invalidates it on every mutation.
type QueryCache interface {
	Get(at float64) (value float64, exists bool)
	Put(at, value float64)
	InvalidateAll()
}

type TimelineSet interface {
	CreateTimeline() (id uint64, err error)
	CreateTimelineEx(id uint64) (newID uint64, err error)
	GetTimeline(id uint64) (tl Timeline, err error)
	DropTimeline(id uint64) error
	ListTimelineIDs() []uint64
}
