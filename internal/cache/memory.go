package cache

import "sync"

type MemoryKvStore struct {
	items map[string]interface{}
	mu    sync.RWMutex
}

func NewMemoryCache() Cache {
	return &MemoryKvStore{items: make(map[string]interface{})}
}

func (c *MemoryKvStore) Store(key string, i interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = i
}

func (c *MemoryKvStore) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[key]
}
