// Package cache stores derived artifacts between runs.
//
// Flow graphs are keyed by a hash of the transactions they were built from,
// and rendered artifacts by a hash of the graph, so a key never goes stale:
// new transactions produce a new key. Entries still carry a TTL to bound
// the cache size.
//
// Backends: [FileCache] for local use, [RedisCache] for a shared cache and
// [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	TTLFlow     = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// Close releases the backend.
	Close() error
}

// FlowKeyOpts holds the build options that change a flow graph.
type FlowKeyOpts struct {
	Acyclic bool `json:"acyclic"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// FlowKey keys a flow graph built from a set of transactions.
	FlowKey(transactionsHash string, opts FlowKeyOpts) string
	// ArtifactKey keys a rendering of a flow graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form kind:sha256(inputs).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FlowKey implements Keyer.
func (DefaultKeyer) FlowKey(transactionsHash string, opts FlowKeyOpts) string {
	return hashKey("flow", transactionsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
