package timeline

import (
	"sort"
	"sync"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
)

// NewTimelineSet builds a registry of independent timelines. A non nil
// cacheCfg gives every created timeline its own memory query cache. The
// registry guards its own map only, each timeline keeps the single
// threaded contract of Timeline.
func NewTimelineSet(cacheCfg *CacheConfig, logger l.Wrapper) TimelineSet {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &timelineSetImpl{
		logger:    logger.WithFields(l.StringField(l.ClsKey, "timelineSetImpl")),
		cacheCfg:  cacheCfg,
		timelines: make(map[uint64]Timeline),
	}
}

type timelineSetImpl struct {
	logger   l.Wrapper
	cacheCfg *CacheConfig

	lock      sync.Mutex
	timelines map[uint64]Timeline
}

func (impl *timelineSetImpl) CreateTimeline() (uint64, error) {
	return impl.CreateTimelineEx(0)
}

func (impl *timelineSetImpl) CreateTimelineEx(id uint64) (uint64, error) {
	if id == 0 {
		id = snowflake.ID()
	}

	impl.lock.Lock()
	defer impl.lock.Unlock()

	if _, ok := impl.timelines[id]; ok {
		return 0, commerr.ErrAlreadyExists
	}

	impl.timelines[id] = impl.buildTimeline()

	impl.logger.WithFields(l.UInt64Field("id", id)).Debug("timeline created")

	return id, nil
}

func (impl *timelineSetImpl) GetTimeline(id uint64) (Timeline, error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	tl, ok := impl.timelines[id]
	if !ok {
		return nil, commerr.ErrNotFound
	}

	return tl, nil
}

func (impl *timelineSetImpl) DropTimeline(id uint64) error {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	if _, ok := impl.timelines[id]; !ok {
		return commerr.ErrNotFound
	}

	delete(impl.timelines, id)

	impl.logger.WithFields(l.UInt64Field("id", id)).Debug("timeline dropped")

	return nil
}

func (impl *timelineSetImpl) ListTimelineIDs() []uint64 {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	ids := make([]uint64, 0, len(impl.timelines))
	for id := range impl.timelines {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	return ids
}

func (impl *timelineSetImpl) buildTimeline() Timeline {
	if impl.cacheCfg != nil {
		return NewTimelineWithCache(*impl.cacheCfg, impl.logger)
	}

	return NewTimeline(impl.logger)
}
