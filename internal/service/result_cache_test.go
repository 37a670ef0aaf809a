package service

import (
	"fmt"
	"testing"

	"quizdeck_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func cacheAttempt(id string) *model.Attempt {
	return &model.Attempt{ID: id}
}

func TestResultCacheEvictsOldestInserted(t *testing.T) {
	c := NewResultCache(3)

	for i := 0; i < 5; i++ {
		c.Put(cacheAttempt(fmt.Sprintf("a%d", i)))
	}

	assert.Equal(t, 3, c.Len())

	_, ok := c.Get("a0")
	assert.False(t, ok)
	_, ok = c.Get("a1")
	assert.False(t, ok)

	for _, id := range []string{"a2", "a3", "a4"} {
		got, ok := c.Get(id)
		assert.True(t, ok)
		assert.Equal(t, id, got.ID)
	}
}

func TestResultCachePutSameIDDoesNotGrow(t *testing.T) {
	c := NewResultCache(2)

	c.Put(cacheAttempt("x"))
	c.Put(cacheAttempt("x"))
	c.Put(cacheAttempt("y"))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("x")
	assert.True(t, ok)
	_, ok = c.Get("y")
	assert.True(t, ok)
}

func TestResultCacheRemoveAndClear(t *testing.T) {
	c := NewResultCache(4)
	c.Put(cacheAttempt("a"))
	c.Put(cacheAttempt("b"))

	c.Remove("a")
	c.Remove("never-there")
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}
