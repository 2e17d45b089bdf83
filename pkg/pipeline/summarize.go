package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/timohermans/rabo-overview/pkg/cache"
	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/flow"
	"github.com/timohermans/rabo-overview/pkg/ledger"
	"github.com/timohermans/rabo-overview/pkg/observability"
	"github.com/timohermans/rabo-overview/pkg/store"
	"github.com/timohermans/rabo-overview/pkg/summary"
)

// Summarize loads the transactions selected by opts.Month and summarizes
// them.
func (r *Runner) Summarize(ctx context.Context, repo store.Repository, opts Options) (*summary.Summary, error) {
	s, _, err := r.SummarizeWithCacheInfo(ctx, repo, opts)
	return s, err
}

// SummarizeWithCacheInfo is Summarize, also reporting whether the flow
// graph came from the cache.
func (r *Runner) SummarizeWithCacheInfo(ctx context.Context, repo store.Repository, opts Options) (s *summary.Summary, hit bool, err error) {
	hooks := observability.Pipeline()
	hooks.OnSummarizeStart(ctx, opts.Month)
	began := time.Now()
	defer func() {
		n := 0
		if s != nil {
			n = len(s.Transactions())
		}
		hooks.OnSummarizeComplete(ctx, opts.Month, n, time.Since(began), err)
	}()

	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	logger := r.logger(opts)

	start, end, err := period(opts.Month)
	if err != nil {
		return nil, false, err
	}
	txs, err := repo.ListTransactions(ctx, start, end)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeStorage, err, "list transactions")
	}

	result, hit := r.buildFlow(ctx, txs, opts)
	for _, l := range result.Removed {
		logger.Debug("suppressed cyclic link",
			"source", l.Source,
			"target", l.Target,
			"value", l.Value)
	}
	if len(result.Removed) > 0 {
		logger.Info("suppressed cyclic links", "count", len(result.Removed))
	}

	return summary.NewWithFlow(txs, result), hit, nil
}

// period converts a month argument to an inclusive date range. An empty
// month yields an open range.
func period(month string) (start, end time.Time, err error) {
	if month == "" {
		return time.Time{}, time.Time{}, nil
	}
	t, err := ledger.ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Wrap(apperrors.ErrCodeInvalidMonth, err, "invalid month %q", month)
	}
	start, end = ledger.MonthRange(t)
	return start, end, nil
}

// cachedFlow is the cache encoding of a flow.Result.
type cachedFlow struct {
	Graph   flow.Graph  `json:"graph"`
	Removed []flow.Link `json:"removed"`
}

// buildFlow builds the flow graph for txs, consulting the cache first.
func (r *Runner) buildFlow(ctx context.Context, txs []*ledger.Transaction, opts Options) (flow.Result, bool) {
	txData, err := json.Marshal(txs)
	if err != nil {
		return build(txs, opts), false
	}
	key := r.Keyer.FlowKey(cache.Hash(txData), cache.FlowKeyOpts{Acyclic: opts.Acyclic})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedFlow
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, observability.KeyTypeFlow)
				return flow.Result{Graph: cached.Graph, Removed: cached.Removed}, true
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, observability.KeyTypeFlow)

	result := build(txs, opts)
	if data, err := json.Marshal(cachedFlow{Graph: result.Graph, Removed: result.Removed}); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLFlow); err != nil {
			r.logger(opts).Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, observability.KeyTypeFlow, len(data))
		}
	}
	return result, false
}

func build(txs []*ledger.Transaction, opts Options) flow.Result {
	result := flow.BuildWithReport(txs)
	if !opts.Acyclic {
		return result
	}
	kept, removed := flow.BreakRemainingCycles(result.Graph.Links)
	result.Graph = flow.Assemble(result.Graph.Nodes, kept)
	result.Removed = append(result.Removed, removed...)
	return result
}
