package collection

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values loaded from files so runs that reference the same
// file share one copy. Concurrent loads of one path run once.
type Cache[V any] struct {
	mu     sync.RWMutex
	values map[string]V
	group  singleflight.Group
}

func NewCache[V any]() *Cache[V] {
	return &Cache[V]{values: make(map[string]V)}
}

func (c *Cache[V]) Get(path string, load func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.values[path]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	res, err, _ := c.group.Do(path, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.values[path]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := load()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.values[path] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
