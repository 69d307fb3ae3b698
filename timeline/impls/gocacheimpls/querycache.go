package gocacheimpls

import (
	"strconv"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/libtimeline/timeline"
)

// NewGoCacheQueryCache is a ttl driven QueryCache on go-cache. go-cache
// keeps no per entry insertion order, so the entry cap is crude: inserting
// a new point into a full cache flushes everything first.
func NewGoCacheQueryCache(cfg timeline.CacheConfig) timeline.QueryCache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = timeline.DefaultCacheMaxEntries
	}

	if cfg.TTL <= 0 {
		cfg.TTL = timeline.DefaultCacheTTL
	}

	return &goCacheQueryCacheImpl{
		cfg:    cfg,
		cached: cache.New(cfg.TTL, cfg.TTL),
	}
}

type goCacheQueryCacheImpl struct {
	cfg    timeline.CacheConfig
	cached *cache.Cache
}

func (impl *goCacheQueryCacheImpl) Get(at float64) (value float64, exists bool) {
	i, ok := impl.cached.Get(cacheKey(at))
	if !ok {
		return
	}

	value, exists = i.(float64)

	return
}

func (impl *goCacheQueryCacheImpl) Put(at, value float64) {
	key := cacheKey(at)

	if _, ok := impl.cached.Get(key); !ok && impl.cached.ItemCount() >= impl.cfg.MaxEntries {
		impl.cached.Flush()
	}

	impl.cached.Set(key, value, impl.cfg.TTL)
}

func (impl *goCacheQueryCacheImpl) InvalidateAll() {
	impl.cached.Flush()
}

func cacheKey(at float64) string {
	return strconv.FormatFloat(at, 'g', -1, 64)
}
