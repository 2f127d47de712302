package centrality

import (
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/path"
)

// Option configures a centrality query.
type Option func(*config)

type config struct {
	weight graph.WeightFunc
}

func newConfig(opts []Option) config {
	cfg := config{weight: graph.EdgeWeight}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c config) pathOpts() []path.Option {
	return []path.Option{path.WithWeight(c.weight)}
}

// WithWeight sets the edge cost function. A nil fn keeps the stored weights.
func WithWeight(fn graph.WeightFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.weight = fn
		}
	}
}

// WithHops measures distance in edges rather than stored weight. This is
// what most textbook definitions of center and periphery use.
func WithHops() Option { return WithWeight(graph.HopCount) }
