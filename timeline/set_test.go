// nolint
package timeline

import (
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
)

func TestTimelineSetCreate(t *testing.T) {
	s := NewTimelineSet(nil, nil)

	id, err := s.CreateTimeline()
	assert.Nil(t, err)
	assert.True(t, id > 0)

	tl, err := s.GetTimeline(id)
	assert.Nil(t, err)

	err = tl.Add(10, 30, 1)
	assert.Nil(t, err)

	tl2, err := s.GetTimeline(id)
	assert.Nil(t, err)
	checkSerialized(t, tl2, "[[10,1],[30,0]]")
}

func TestTimelineSetCreateEx(t *testing.T) {
	s := NewTimelineSet(nil, nil)

	id, err := s.CreateTimelineEx(5)
	assert.Nil(t, err)
	assert.EqualValues(t, 5, id)

	_, err = s.CreateTimelineEx(5)
	assert.ErrorIs(t, err, commerr.ErrAlreadyExists)

	id, err = s.CreateTimelineEx(0)
	assert.Nil(t, err)
	assert.True(t, id > 0)
}

func TestTimelineSetDrop(t *testing.T) {
	s := NewTimelineSet(nil, nil)

	id, err := s.CreateTimeline()
	assert.Nil(t, err)

	err = s.DropTimeline(id)
	assert.Nil(t, err)

	err = s.DropTimeline(id)
	assert.ErrorIs(t, err, commerr.ErrNotFound)

	_, err = s.GetTimeline(id)
	assert.ErrorIs(t, err, commerr.ErrNotFound)
}

func TestTimelineSetList(t *testing.T) {
	s := NewTimelineSet(nil, nil)

	assert.EqualValues(t, 0, len(s.ListTimelineIDs()))

	_, err := s.CreateTimelineEx(30)
	assert.Nil(t, err)

	_, err = s.CreateTimelineEx(10)
	assert.Nil(t, err)

	_, err = s.CreateTimelineEx(20)
	assert.Nil(t, err)

	assert.EqualValues(t, []uint64{10, 20, 30}, s.ListTimelineIDs())
}

func TestTimelineSetWithCache(t *testing.T) {
	s := NewTimelineSet(&CacheConfig{MaxEntries: 16, TTL: time.Minute}, nil)

	id, err := s.CreateTimeline()
	assert.Nil(t, err)

	tl, err := s.GetTimeline(id)
	assert.Nil(t, err)

	err = tl.Add(10, 30, 1)
	assert.Nil(t, err)

	v, err := tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)

	v, err = tl.ValueAt(15)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)
}
