package service

import (
	"sync"

	"quizdeck_backend/internal/model"
)

// ResultCache is a bounded lookup for just-submitted attempts. Once the cap
// is exceeded the oldest-inserted entry is evicted. The ledger stays the
// source of truth; this only makes the immediate post-submission fetch cheap.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	items    map[string]*model.Attempt
}

func NewResultCache(capacity int) *ResultCache {
	return &ResultCache{
		capacity: capacity,
		items:    make(map[string]*model.Attempt, capacity),
	}
}

func (c *ResultCache) Put(a *model.Attempt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[a.ID]; !exists {
		c.order = append(c.order, a.ID)
	}
	c.items[a.ID] = a

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
}

func (c *ResultCache) Get(id string) (*model.Attempt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.items[id]
	return a, ok
}

func (c *ResultCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, key := range c.order {
		if key == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = nil
	c.items = make(map[string]*model.Attempt, c.capacity)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
