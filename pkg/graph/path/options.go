package path

import (
	"context"

	"github.com/matzehuels/citygraph/pkg/graph"
)

// Option configures a path query.
type Option func(*config)

type config struct {
	weight graph.WeightFunc
	cutoff int
	ctx    context.Context
}

func newConfig(opts []Option) config {
	cfg := config{weight: graph.EdgeWeight}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWeight sets the edge cost function. A nil fn keeps the stored weights.
func WithWeight(fn graph.WeightFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.weight = fn
		}
	}
}

// WithHops makes every edge cost 1.
func WithHops() Option { return WithWeight(graph.HopCount) }

// WithCutoff limits AllSimplePaths to paths of at most n edges.
// Zero or negative means no limit.
func WithCutoff(n int) Option {
	return func(c *config) { c.cutoff = n }
}

// WithContext stops AllSimplePaths once ctx is done. The sequence then ends
// early and the caller should check ctx.Err.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}
