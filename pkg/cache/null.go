package cache

import (
	"context"
	"time"
)

// NullCache is a Cache that stores nothing: every Get misses. The CLI
// uses it for --no-cache and when the configured backend is unreachable.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Clear(context.Context) (int, error)                       { return 0, nil }
func (*NullCache) Close() error                                             { return nil }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
