package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/timohermans/rabo-overview/pkg/cache"
	"github.com/timohermans/rabo-overview/pkg/store"
)

// Runner executes pipeline stages with caching. It holds no per-run state
// and can be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute summarizes the repository and renders the flow graph.
func (r *Runner) Execute(ctx context.Context, repo store.Repository, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	s, flowHit, err := r.SummarizeWithCacheInfo(ctx, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	result.Summary = s
	result.Stats.SummarizeTime = time.Since(start)
	result.Stats.Transactions = len(s.Transactions())
	result.Stats.NodeCount = len(s.FlowGraph.Nodes)
	result.Stats.LinkCount = len(s.FlowGraph.Links)
	result.CacheInfo.FlowHit = flowHit

	r.logger(opts).Info("summarized transactions",
		"transactions", result.Stats.Transactions,
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"duration", result.Stats.SummarizeTime)

	start = time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, s.FlowGraph, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.GraphHash = hash
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	r.logger(opts).Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
