package timeline

import (
	"sync"
	"time"
)

// NewMemQueryCache builds the default ValueAt cache: at most
// cfg.MaxEntries entries evicted in insertion order, each entry expiring
// cfg.TTL after its last write. Expiry is lazy, there is no background
// sweeper. Zero config fields take the package defaults.
func NewMemQueryCache(cfg CacheConfig) QueryCache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultCacheMaxEntries
	}

	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}

	return &memQueryCacheImpl{
		cfg:     cfg,
		entries: make(map[float64]cacheEntry),
	}
}

type cacheEntry struct {
	value    float64
	expireAt time.Time
}

type memQueryCacheImpl struct {
	lock sync.Mutex

	cfg     CacheConfig
	entries map[float64]cacheEntry
	order   []float64
}

func (impl *memQueryCacheImpl) Get(at float64) (value float64, exists bool) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	entry, ok := impl.entries[at]
	if !ok || time.Now().After(entry.expireAt) {
		return
	}

	value = entry.value
	exists = true

	return
}

func (impl *memQueryCacheImpl) Put(at, value float64) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	// a re-put keeps its original eviction position
	if _, ok := impl.entries[at]; !ok {
		for len(impl.entries) >= impl.cfg.MaxEntries {
			oldest := impl.order[0]
			impl.order = impl.order[1:]

			delete(impl.entries, oldest)
		}

		impl.order = append(impl.order, at)
	}

	impl.entries[at] = cacheEntry{
		value:    value,
		expireAt: time.Now().Add(impl.cfg.TTL),
	}
}

func (impl *memQueryCacheImpl) InvalidateAll() {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.entries = make(map[float64]cacheEntry)
	impl.order = nil
}
