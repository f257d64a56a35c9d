package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is a per-process read-through cache for projections keyed by id.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Invalidate drops a single key. Every write to a cached id must call it.
func (c *Cache) Invalidate(key string) {
	c.Cache.Delete(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyBlog(id string) string {
	return "blog:" + id
}

func CacheKeyPost(id string) string {
	return "post:" + id
}
