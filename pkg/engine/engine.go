// Package engine is the query facade used by the CLI and the HTTP server.
//
// An [Engine] wraps one read-only [graph.Graph] and exposes every query of
// the path, centrality, and tour packages behind a single type. Each call is
// reported to the registered observability query hooks with its kind,
// duration, and error, so metrics and logging stay out of the algorithm
// packages.
//
// The graph must not be modified after it is handed to New. Under that
// condition an Engine is safe for concurrent use.
package engine

import (
	"context"
	"time"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/centrality"
	"github.com/matzehuels/citygraph/pkg/graph/path"
	"github.com/matzehuels/citygraph/pkg/graph/tour"
	"github.com/matzehuels/citygraph/pkg/observability"
)

// Query kinds reported to the observability hooks.
const (
	KindShortestPath = "shortest_path"
	KindSimplePaths  = "simple_paths"
	KindConnected    = "connected"
	KindDistances    = "distances"
	KindFarthest     = "farthest_node"
	KindEccentricity = "eccentricity"
	KindCenter       = "center"
	KindPeriphery    = "periphery"
	KindComponents   = "components"
	KindTour         = "tour"
	KindMST          = "mst"
)

// Engine answers graph queries over a fixed graph.
type Engine struct {
	g *graph.Graph
}

// New creates an engine for g.
func New(g *graph.Graph) *Engine {
	return &Engine{g: g}
}

// Graph returns the underlying graph.
func (e *Engine) Graph() *graph.Graph { return e.g }

// PathResult is a path together with its total weight.
type PathResult struct {
	Path   path.Path `json:"path"`
	Weight float64   `json:"weight"`
}

// Farthest is the answer to a farthest-node query.
type Farthest struct {
	Node     string  `json:"node"`
	Distance float64 `json:"distance"`
}

// SpanningTree is a minimum spanning tree and its total weight.
type SpanningTree struct {
	Edges  []graph.Edge `json:"edges"`
	Weight float64      `json:"weight"`
}

// ShortestPath returns a minimum-weight path from source to target.
func (e *Engine) ShortestPath(ctx context.Context, source, target string, opts ...path.Option) (PathResult, error) {
	return track(ctx, KindShortestPath, func() (PathResult, error) {
		if !e.g.HasNode(target) {
			return PathResult{}, errors.NodeNotFound(target)
		}
		tree, err := path.SingleSource(e.g, source, opts...)
		if err != nil {
			return PathResult{}, err
		}
		p, err := tree.PathTo(target)
		if err != nil {
			return PathResult{}, err
		}
		return PathResult{Path: p, Weight: tree.Dist[target]}, nil
	})
}

// SimplePaths collects every simple path from source to target. Use cutoff
// (path.WithCutoff) on large graphs; the count grows exponentially. The
// search stops as soon as ctx is done and returns ctx.Err().
func (e *Engine) SimplePaths(ctx context.Context, source, target string, opts ...path.Option) ([]path.Path, error) {
	return track(ctx, KindSimplePaths, func() ([]path.Path, error) {
		opts = append(opts[:len(opts):len(opts)], path.WithContext(ctx))
		seq, err := path.AllSimplePaths(e.g, source, target, opts...)
		if err != nil {
			return nil, err
		}
		out := []path.Path{}
		for p := range seq {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// IsConnected reports whether the graph is connected.
func (e *Engine) IsConnected(ctx context.Context) (bool, error) {
	return track(ctx, KindConnected, func() (bool, error) {
		return centrality.IsConnected(e.g)
	})
}

// Components returns the connected components of the graph.
func (e *Engine) Components(ctx context.Context) [][]string {
	out, _ := track(ctx, KindComponents, func() ([][]string, error) {
		return centrality.Components(e.g), nil
	})
	return out
}

// Distances returns single-source shortest-path distances from source.
func (e *Engine) Distances(ctx context.Context, source string, opts ...centrality.Option) (path.DistanceMap, error) {
	return track(ctx, KindDistances, func() (path.DistanceMap, error) {
		return centrality.SingleSourceDistances(e.g, source, opts...)
	})
}

// FarthestNode returns the reachable node farthest from source.
func (e *Engine) FarthestNode(ctx context.Context, source string, opts ...centrality.Option) (Farthest, error) {
	return track(ctx, KindFarthest, func() (Farthest, error) {
		id, d, err := centrality.FarthestNode(e.g, source, opts...)
		return Farthest{Node: id, Distance: d}, err
	})
}

// Eccentricity returns the eccentricity of node.
func (e *Engine) Eccentricity(ctx context.Context, node string, opts ...centrality.Option) (float64, error) {
	return track(ctx, KindEccentricity, func() (float64, error) {
		return centrality.Eccentricity(e.g, node, opts...)
	})
}

// Center returns the nodes of minimum eccentricity.
func (e *Engine) Center(ctx context.Context, opts ...centrality.Option) ([]string, error) {
	return track(ctx, KindCenter, func() ([]string, error) {
		return centrality.Center(e.g, opts...)
	})
}

// Periphery returns the nodes of maximum eccentricity.
func (e *Engine) Periphery(ctx context.Context, opts ...centrality.Option) ([]string, error) {
	return track(ctx, KindPeriphery, func() ([]string, error) {
		return centrality.Periphery(e.g, opts...)
	})
}

// Tour returns an approximate closed tour of every node.
func (e *Engine) Tour(ctx context.Context, opts ...tour.Option) (tour.Tour, error) {
	return track(ctx, KindTour, func() (tour.Tour, error) {
		return tour.ApproximateTour(e.g, opts...)
	})
}

// MinimumSpanningTree returns a minimum spanning tree of the graph.
func (e *Engine) MinimumSpanningTree(ctx context.Context, opts ...tour.Option) (SpanningTree, error) {
	return track(ctx, KindMST, func() (SpanningTree, error) {
		edges, w, err := tour.MinimumSpanningTree(e.g, opts...)
		return SpanningTree{Edges: edges, Weight: w}, err
	})
}

// track runs fn between the query start and complete hooks.
func track[T any](ctx context.Context, kind string, fn func() (T, error)) (T, error) {
	hooks := observability.Query()
	hooks.OnQueryStart(ctx, kind)
	start := time.Now()
	out, err := fn()
	hooks.OnQueryComplete(ctx, kind, time.Since(start), err)
	return out, err
}
