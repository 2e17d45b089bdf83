package pipeline

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/timohermans/rabo-overview/pkg/cache"
	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/flow"
	flowio "github.com/timohermans/rabo-overview/pkg/io"
	"github.com/timohermans/rabo-overview/pkg/observability"
	"github.com/timohermans/rabo-overview/pkg/render/nodelink"
)

// Render produces one artifact per format in opts.Formats.
func (r *Runner) Render(ctx context.Context, g flow.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.render(ctx, g, opts)
	return artifacts, err
}

// RenderWithCacheInfo is Render, also reporting whether every artifact came
// from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g flow.Graph, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, g, opts)
	return artifacts, hit, err
}

// render returns the artifacts, the graph hash and whether all artifacts
// were cached. Missing formats are rendered concurrently.
func (r *Runner) render(ctx context.Context, g flow.Graph, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	graphData, err := flowio.MarshalGraph(g)
	if err != nil {
		return nil, "", false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize graph")
	}
	graphHash := cache.Hash(graphData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if _, dup := artifacts[format]; dup || slices.Contains(missing, format) {
			continue
		}
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(graphHash, artifactKeyOpts(format, opts))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, observability.KeyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, observability.KeyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, graphHash, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	for _, format := range missing {
		eg.Go(func() error {
			data, err := renderFormat(egCtx, g, format, opts)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err = eg.Wait()
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, graphHash, false, err
	}

	for _, format := range missing {
		key := r.Keyer.ArtifactKey(graphHash, artifactKeyOpts(format, opts))
		if err := r.Cache.Set(ctx, key, artifacts[format], cache.TTLArtifact); err != nil {
			r.logger(opts).Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, observability.KeyTypeArtifact, len(artifacts[format]))
		}
	}
	return artifacts, graphHash, false, nil
}

// artifactKeyOpts includes the label options in the key for formats that
// draw labels.
func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	ko := cache.ArtifactKeyOpts{Format: format}
	if format != FormatJSON {
		ko.Detailed = opts.Detailed
		ko.Currency = opts.Currency
	}
	return ko
}

func renderFormat(ctx context.Context, g flow.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := flowio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, dotOptions(opts))), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, dotOptions(opts)))
	}
	return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported format %q", format)
}

func dotOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Currency: opts.Currency}
}
