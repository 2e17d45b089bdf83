package cache

import (
	"context"
	"time"
)

// WithTTL returns a Cache that stores every entry with ttl, whatever ttl
// the caller passes to Set.
func WithTTL(c Cache, ttl time.Duration) Cache {
	return &ttlCache{Cache: c, ttl: ttl}
}

type ttlCache struct {
	Cache
	ttl time.Duration
}

// Set implements Cache.
func (c *ttlCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}
