package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-memory cache backed by go-cache. Expired entries are
// purged by a janitor goroutine until Stop is called.
type MemoryCache struct {
	store    *gocache.Cache
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemory creates an in-memory cache whose entries live for ttl. A
// non-positive ttl keeps entries until they are deleted.
func NewMemory(ttl time.Duration) *MemoryCache {
	defaultExpiration := ttl
	if ttl <= 0 {
		defaultExpiration = gocache.NoExpiration
	}
	c := &MemoryCache{
		store:  gocache.New(defaultExpiration, gocache.NoExpiration),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// New creates a new in-memory cache (alias for NewMemory)
func New(ttl time.Duration) *MemoryCache {
	return NewMemory(ttl)
}

func (c *MemoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *MemoryCache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

func (c *MemoryCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		// go-cache reads zero as "use the default"; a spent TTL means gone.
		c.store.Delete(key)
		return
	}
	c.store.Set(key, value, ttl)
}

func (c *MemoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *MemoryCache) Clear() {
	c.store.Flush()
}

func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.store.DeleteExpired()
		case <-c.stopCh:
			return
		}
	}
}

// Ensure MemoryCache implements Cache interface
var _ Cache = (*MemoryCache)(nil)
