package graph

import (
	"slices"

	"github.com/matzehuels/citygraph/pkg/errors"
)

// Edge is an undirected weighted connection between two distinct nodes.
// U and V are stored in the order they were first inserted; the pair is
// unordered for every lookup.
type Edge struct {
	U      string  `json:"u"`
	V      string  `json:"v"`
	Weight float64 `json:"weight"`
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

// Neighbor is a node adjacent to a queried node together with the weight of
// the connecting edge.
type Neighbor struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// pairKey identifies an unordered node pair.
type pairKey struct{ a, b string }

func keyOf(u, v string) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// Graph is a weighted undirected simple graph.
//
// Nodes and edges remember their insertion order, and every iteration this
// package exposes follows that order. Queries rely on it for deterministic
// tie-breaking.
//
// The zero value is not usable - use New or Build.
// Graph is not safe for concurrent mutation; concurrent readers are fine once
// construction has finished.
type Graph struct {
	name  string
	order []string         // node ids in insertion order
	index map[string]int   // node id -> position in order
	edges []Edge           // edges in insertion order
	pairs map[pairKey]int  // unordered pair -> position in edges
	adj   map[string][]int // node id -> incident edge positions, insertion order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		pairs: make(map[pairKey]int),
		adj:   make(map[string][]int),
	}
}

// AddNode adds a node. Adding an existing id is a no-op.
// Returns an INVALID_INPUT error for empty or malformed ids.
func (g *Graph) AddNode(id string) error {
	if _, ok := g.index[id]; ok {
		return nil
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge inserts the undirected edge u-v with weight w, creating u and v if
// they do not exist yet. An existing edge between the same pair is
// overwritten in place and keeps its original position.
//
// Returns an INVALID_EDGE error for self-loops, negative or non-finite
// weights, and malformed endpoint ids. A failed AddEdge leaves the graph
// unchanged.
func (g *Graph) AddEdge(u, v string, w float64) error {
	if u == v {
		return errors.New(errors.ErrCodeInvalidEdge, "self-loop on %q is not allowed", u)
	}
	if err := errors.ValidateWeight(u, v, w); err != nil {
		return err
	}
	for _, id := range []string{u, v} {
		if _, ok := g.index[id]; ok {
			continue
		}
		if err := errors.ValidateNodeID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidEdge, err, "edge %q-%q", u, v)
		}
	}

	_ = g.AddNode(u)
	_ = g.AddNode(v)

	k := keyOf(u, v)
	if pos, ok := g.pairs[k]; ok {
		g.edges[pos].Weight = w
		return nil
	}
	pos := len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: w})
	g.pairs[k] = pos
	g.adj[u] = append(g.adj[u], pos)
	g.adj[v] = append(g.adj[v], pos)
	return nil
}

// Neighbors returns the nodes directly connected to u with the weight of each
// connecting edge, in edge insertion order.
// Returns a NODE_NOT_FOUND error if u is absent.
func (g *Graph) Neighbors(u string) ([]Neighbor, error) {
	if !g.HasNode(u) {
		return nil, errors.NodeNotFound(u)
	}
	return g.neighbors(u), nil
}

// neighbors is Neighbors without the existence check, for callers that have
// already validated u.
func (g *Graph) neighbors(u string) []Neighbor {
	incident := g.adj[u]
	out := make([]Neighbor, len(incident))
	for i, pos := range incident {
		e := g.edges[pos]
		out[i] = Neighbor{ID: e.Other(u), Weight: e.Weight}
	}
	return out
}

// EachNeighbor calls fn for each neighbor of u in edge insertion order and
// stops early if fn returns false. Unknown nodes have no neighbors.
func (g *Graph) EachNeighbor(u string, fn func(n Neighbor) bool) {
	for _, pos := range g.adj[u] {
		e := g.edges[pos]
		if !fn(Neighbor{ID: e.Other(u), Weight: e.Weight}) {
			return
		}
	}
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether u and v are directly connected.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.pairs[keyOf(u, v)]
	return ok
}

// Weight returns the weight of the edge u-v and whether it exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	pos, ok := g.pairs[keyOf(u, v)]
	if !ok {
		return 0, false
	}
	return g.edges[pos].Weight, true
}

// Index returns the insertion position of id, or -1 if absent.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Nodes returns a copy of the node ids in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 {
	var sum float64
	for _, e := range g.edges {
		sum += e.Weight
	}
	return sum
}

// Name returns the graph's name, or "" if it has none.
func (g *Graph) Name() string { return g.name }

// SetName names the graph. The name travels through ToSpec and graph files.
func (g *Graph) SetName(name string) { g.name = name }

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	c.name = g.name
	for _, id := range g.order {
		_ = c.AddNode(id)
	}
	for _, e := range g.edges {
		_ = c.AddEdge(e.U, e.V, e.Weight)
	}
	return c
}
