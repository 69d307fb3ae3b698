// nolint
package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingQueryCache struct {
	inner QueryCache

	hits        int
	puts        int
	invalidates int
}

func (c *countingQueryCache) Get(at float64) (float64, bool) {
	v, ok := c.inner.Get(at)
	if ok {
		c.hits++
	}

	return v, ok
}

func (c *countingQueryCache) Put(at, value float64) {
	c.puts++

	c.inner.Put(at, value)
}

func (c *countingQueryCache) InvalidateAll() {
	c.invalidates++

	c.inner.InvalidateAll()
}

func TestMemQueryCache(t *testing.T) {
	qc := NewMemQueryCache(CacheConfig{MaxEntries: 10, TTL: time.Minute})

	_, exists := qc.Get(1)
	assert.False(t, exists)

	qc.Put(1, 10)
	qc.Put(2, 20)

	v, exists := qc.Get(1)
	assert.True(t, exists)
	assert.EqualValues(t, 10, v)

	v, exists = qc.Get(2)
	assert.True(t, exists)
	assert.EqualValues(t, 20, v)

	qc.InvalidateAll()

	_, exists = qc.Get(1)
	assert.False(t, exists)

	_, exists = qc.Get(2)
	assert.False(t, exists)
}

func TestMemQueryCacheEviction(t *testing.T) {
	qc := NewMemQueryCache(CacheConfig{MaxEntries: 2, TTL: time.Minute})

	qc.Put(1, 10)
	qc.Put(2, 20)
	qc.Put(3, 30)

	// the oldest inserted entry went first
	_, exists := qc.Get(1)
	assert.False(t, exists)

	v, exists := qc.Get(2)
	assert.True(t, exists)
	assert.EqualValues(t, 20, v)

	v, exists = qc.Get(3)
	assert.True(t, exists)
	assert.EqualValues(t, 30, v)
}

func TestMemQueryCacheRePut(t *testing.T) {
	qc := NewMemQueryCache(CacheConfig{MaxEntries: 2, TTL: time.Minute})

	qc.Put(1, 10)
	qc.Put(2, 20)

	// updating a point keeps its eviction position
	qc.Put(1, 11)

	qc.Put(3, 30)

	_, exists := qc.Get(1)
	assert.False(t, exists)

	v, exists := qc.Get(2)
	assert.True(t, exists)
	assert.EqualValues(t, 20, v)

	v, exists = qc.Get(3)
	assert.True(t, exists)
	assert.EqualValues(t, 30, v)
}

func TestMemQueryCacheTTL(t *testing.T) {
	qc := NewMemQueryCache(CacheConfig{MaxEntries: 10, TTL: time.Millisecond * 50})

	qc.Put(1, 10)

	v, exists := qc.Get(1)
	assert.True(t, exists)
	assert.EqualValues(t, 10, v)

	time.Sleep(time.Millisecond * 80)

	_, exists = qc.Get(1)
	assert.False(t, exists)

	qc.Put(1, 11)

	v, exists = qc.Get(1)
	assert.True(t, exists)
	assert.EqualValues(t, 11, v)
}

func TestTimelineCacheFlow(t *testing.T) {
	qc := &countingQueryCache{inner: NewMemQueryCache(CacheConfig{})}

	tl := NewTimelineEx(qc, nil)

	err := tl.Add(10, 30, 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, qc.invalidates)

	v, err := tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)
	assert.EqualValues(t, 1, qc.puts)
	assert.EqualValues(t, 0, qc.hits)

	v, err = tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)
	assert.EqualValues(t, 1, qc.puts)
	assert.EqualValues(t, 1, qc.hits)

	// every mutation clears the whole cache
	err = tl.Add(10, 30, 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, qc.invalidates)

	v, err = tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, v)
	assert.EqualValues(t, 2, qc.puts)
	assert.EqualValues(t, 1, qc.hits)

	tl.Reset()
	assert.EqualValues(t, 3, qc.invalidates)

	v, err = tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 0, v)
}
