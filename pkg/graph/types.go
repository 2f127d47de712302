package graph

import (
	"fmt"

	"github.com/matzehuels/citygraph/pkg/errors"
)

// =============================================================================
// Spec - Graph Construction Input
// =============================================================================

// Spec is the canonical input format for a graph: a list of nodes and a list
// of weighted edges. It is the shape of JSON, TOML and YAML graph files and of
// the built-in datasets.
//
// Nodes referenced only by edges are created implicitly, so Nodes is needed
// only for isolated nodes or to fix the node order.
type Spec struct {
	Name  string     `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Nodes []string   `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []EdgeSpec `json:"edges" toml:"edges" yaml:"edges"`
}

// EdgeSpec is one (from, to, weight) tuple of a Spec.
type EdgeSpec struct {
	From   string  `json:"from" toml:"from" yaml:"from"`
	To     string  `json:"to" toml:"to" yaml:"to"`
	Weight float64 `json:"weight" toml:"weight" yaml:"weight"`
}

// Build constructs a new Graph from spec. Nodes are added first, in order,
// then edges. The first invalid node or edge aborts construction and the
// returned error names it.
func Build(spec Spec) (*Graph, error) {
	g := New()
	g.name = spec.Name
	for i, id := range spec.Nodes {
		if err := g.AddNode(id); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i, e := range spec.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d (%s-%s): %w", i, e.From, e.To, err)
		}
	}
	return g, nil
}

// MustBuild is like Build but panics on error. It is intended for
// hard-coded datasets and tests.
func MustBuild(spec Spec) *Graph {
	g, err := Build(spec)
	if err != nil {
		panic(err)
	}
	return g
}

// ToSpec converts g back into its input form. Build(g.ToSpec()) produces a
// graph equal to g, including its name and node and edge order.
func (g *Graph) ToSpec() Spec {
	spec := Spec{
		Name:  g.name,
		Nodes: g.Nodes(),
		Edges: make([]EdgeSpec, len(g.edges)),
	}
	for i, e := range g.edges {
		spec.Edges[i] = EdgeSpec{From: e.U, To: e.V, Weight: e.Weight}
	}
	return spec
}

// =============================================================================
// Weight Functions
// =============================================================================

// WeightFunc maps an edge to the cost a query should use for it.
// It receives the endpoints in traversal order and the stored weight.
type WeightFunc func(u, v string, w float64) float64

// EdgeWeight uses the stored edge weight. It is the default everywhere.
func EdgeWeight(_, _ string, w float64) float64 { return w }

// HopCount gives every edge cost 1, turning weighted queries into hop-count
// queries.
func HopCount(_, _ string, _ float64) float64 { return 1 }

// Cost applies fn (EdgeWeight if nil) and validates the result.
// Returns an INVALID_EDGE error if fn produced a negative or non-finite cost.
func Cost(fn WeightFunc, u, v string, w float64) (float64, error) {
	if fn == nil {
		return w, nil
	}
	c := fn(u, v, w)
	if err := errors.ValidateWeight(u, v, c); err != nil {
		return 0, err
	}
	return c, nil
}
