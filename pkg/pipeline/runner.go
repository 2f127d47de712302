package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/citygraph/pkg/cache"
	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/engine"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/render/nodelink"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger; it does not keep
// results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// ReportWithCacheInfo answers the canned questions about the engine's graph,
// reading and writing the cache, and reports whether the result was a hit.
//
// Reports containing failed answers are cached too: a failure is a property
// of the graph and the questions, not a transient condition.
func (r *Runner) ReportWithCacheInfo(ctx context.Context, e *engine.Engine, q dataset.Questions) (engine.Report, bool, error) {
	key := r.Keyer.ReportKey(cache.GraphHash(e.Graph()), q)

	var cached engine.Report
	if err := cache.GetJSON(ctx, r.Cache, key, &cached); err == nil {
		r.Logger.Debug("report cache hit", "key", key)
		return cached, true, nil
	}

	start := time.Now()
	report := e.Report(ctx, q)
	if err := ctx.Err(); err != nil {
		return engine.Report{}, false, err
	}
	r.Logger.Debug("computed report",
		"answers", len(report.Answers),
		"failed", report.Failed(),
		"duration", time.Since(start))

	if err := cache.SetJSON(ctx, r.Cache, key, report, cache.TTLReport); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return report, false, nil
}

// Report is a convenience wrapper that calls ReportWithCacheInfo and discards the cache hit info.
func (r *Runner) Report(ctx context.Context, e *engine.Engine, q dataset.Questions) (engine.Report, error) {
	report, _, err := r.ReportWithCacheInfo(ctx, e, q)
	return report, err
}

// RenderWithCacheInfo lays out and renders g, reading and writing the cache,
// and reports whether the result was a hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts RenderOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	key := r.Keyer.ArtifactKey(cache.GraphHash(g), opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			r.Logger.Debug("artifact cache hit", "key", key, "bytes", len(data))
			return data, true, nil
		}
	}

	start := time.Now()
	data, err := nodelink.Draw(ctx, g, opts.DrawOptions())
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered graph",
		"format", opts.Format,
		"layout", opts.Layout,
		"bytes", len(data),
		"duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
