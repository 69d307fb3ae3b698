package redisimpls

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtimeline/timeline"
)

// NewRedisQueryCache is a QueryCache shared through redis. Entries live
// under a generation counter, so InvalidateAll is a single INCR and the
// orphaned generation dies by ttl. Redis failures degrade to cache misses,
// they never fail a query and never satisfy one from a generation the
// cache cannot vouch for.
func NewRedisQueryCache(preKey string, redisCli *redis.Client, cfg timeline.CacheConfig, logger l.Wrapper) timeline.QueryCache {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisQueryCacheImpl"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = timeline.DefaultCacheMaxEntries
	}

	if cfg.TTL <= 0 {
		cfg.TTL = timeline.DefaultCacheTTL
	}

	return &redisQueryCacheImpl{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
		cfg:      cfg,
	}
}

type redisQueryCacheImpl struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
	cfg      timeline.CacheConfig

	lock  sync.Mutex
	stale bool
}

func (impl *redisQueryCacheImpl) Get(at float64) (value float64, exists bool) {
	if impl.isStale() {
		return
	}

	ctx := context.Background()

	gen, ok := impl.currentGen(ctx)
	if !ok {
		return
	}

	v, err := impl.redisCli.Get(ctx, impl.entryKey(gen, at)).Float64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			impl.logger.WithFields(l.ErrorField(err)).Error("get cache entry failed")
		}

		return
	}

	value = v
	exists = true

	return
}

func (impl *redisQueryCacheImpl) Put(at, value float64) {
	if impl.isStale() {
		return
	}

	ctx := context.Background()

	gen, ok := impl.currentGen(ctx)
	if !ok {
		return
	}

	err := qcPutScript.Run(ctx, impl.redisCli, []string{impl.orderKey(gen), impl.entryKey(gen, at)},
		impl.entryKeyPre(gen), pointMember(at), value, impl.cfg.TTL.Milliseconds(), impl.cfg.MaxEntries).Err()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Error("put cache entry failed")
	}
}

func (impl *redisQueryCacheImpl) InvalidateAll() {
	err := impl.redisCli.Incr(context.Background(), impl.genKey()).Err()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Error("bump cache generation failed")

		// the bump did not land, serve nothing until one does
		impl.markStale(true)

		return
	}

	impl.markStale(false)
}

// currentGen reports the live generation. A missing key is generation 0;
// any other failure leaves the generation unknown and nothing may be
// served from it.
func (impl *redisQueryCacheImpl) currentGen(ctx context.Context) (gen int64, ok bool) {
	gen, err := impl.redisCli.Get(ctx, impl.genKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}

		impl.logger.WithFields(l.ErrorField(err)).Error("get cache generation failed")

		return 0, false
	}

	return gen, true
}

func (impl *redisQueryCacheImpl) isStale() bool {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	return impl.stale
}

func (impl *redisQueryCacheImpl) markStale(stale bool) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.stale = stale
}

func pointMember(at float64) string {
	return strconv.FormatFloat(at, 'g', -1, 64)
}

func (impl *redisQueryCacheImpl) baseKey() string {
	if impl.preKey == "" {
		return "timeline"
	}

	return impl.preKey + ":" + "timeline"
}

func (impl *redisQueryCacheImpl) genKey() string {
	return impl.baseKey() + ":qc:gen"
}

func (impl *redisQueryCacheImpl) orderKey(gen int64) string {
	return impl.baseKey() + ":qc:order:" + strconv.FormatInt(gen, 10)
}

func (impl *redisQueryCacheImpl) entryKeyPre(gen int64) string {
	return impl.baseKey() + ":qc:" + strconv.FormatInt(gen, 10) + ":"
}

func (impl *redisQueryCacheImpl) entryKey(gen int64, at float64) string {
	return impl.entryKeyPre(gen) + pointMember(at)
}
