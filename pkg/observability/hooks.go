// Package observability provides hooks for metrics, tracing and logging.
//
// Hooks let callers observe statement imports, summaries, renders and cache
// lookups without the library depending on a metrics backend. The defaults
// do nothing; register implementations once at startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Library code emits events through the registry:
//
//	observability.Pipeline().OnImportStart(ctx, name)
//	// ... parse ...
//	observability.Pipeline().OnImportComplete(ctx, name, created, failed, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Cache key types reported to CacheHooks.
const (
	KeyTypeFlow     = "flow"
	KeyTypeArtifact = "artifact"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the statement pipeline.
type PipelineHooks interface {
	// Import events, one pair per statement export.
	OnImportStart(ctx context.Context, source string)
	OnImportComplete(ctx context.Context, source string, created, failed int, duration time.Duration, err error)

	// Summarize events. month is empty for an open period.
	OnSummarizeStart(ctx context.Context, month string)
	OnSummarizeComplete(ctx context.Context, month string, transactions int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnImportStart(context.Context, string) {}
func (NoopPipelineHooks) OnImportComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnSummarizeStart(context.Context, string) {}
func (NoopPipelineHooks) OnSummarizeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
