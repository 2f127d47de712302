package tour

import (
	"math"
	"slices"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/path"
)

// Tour is a closed walk that visits every node at least once.
type Tour struct {
	// Walk starts and ends at the start node. Consecutive entries are
	// adjacent in the graph, so intermediate nodes may repeat.
	Walk []string `json:"walk"`
	// Weight is the total cost of Walk under the query's weight function.
	Weight float64 `json:"weight"`
}

// Visits returns the distinct nodes of the walk in first-visit order.
func (t Tour) Visits() []string {
	seen := make(map[string]bool, len(t.Walk))
	var out []string
	for _, id := range t.Walk {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Option configures a tour query.
type Option func(*config)

type config struct {
	start  string
	weight graph.WeightFunc
}

// WithStart sets the node the walk begins and ends at. The default is the
// first node inserted into the graph.
func WithStart(id string) Option {
	return func(c *config) { c.start = id }
}

// WithWeight sets the edge cost function. A nil fn keeps the stored weights.
func WithWeight(fn graph.WeightFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.weight = fn
		}
	}
}

// resolve applies opts and checks the start node.
func resolve(g *graph.Graph, opts []Option) (config, error) {
	cfg := config{weight: graph.EdgeWeight}
	for _, opt := range opts {
		opt(&cfg)
	}
	if g.NodeCount() == 0 {
		return cfg, errors.New(errors.ErrCodeEmptyGraph, "graph has no nodes")
	}
	if cfg.start == "" {
		cfg.start = g.Nodes()[0]
	}
	if !g.HasNode(cfg.start) {
		return cfg, errors.NodeNotFound(cfg.start)
	}
	return cfg, nil
}

// ApproximateTour returns a closed walk visiting every node, with total
// weight at most twice that of an optimal closed walk.
//
// The graph need not be complete. Steps:
//
//  1. Metric closure: shortest-path distances between every pair of nodes.
//  2. Minimum spanning tree of the closure (Prim, rooted at the start node).
//  3. Preorder traversal of the tree, children in node insertion order.
//  4. Shortcut: each node in preorder once, then back to the start.
//  5. Expand each hop of that order into its shortest path in the graph.
//
// The walk may therefore pass through a node more than once. The result is
// deterministic for a fixed graph, weight function, and start node.
//
// Errors: EMPTY_GRAPH, NODE_NOT_FOUND for an unknown start node, and
// DISCONNECTED_GRAPH when some node is unreachable.
//
// Complexity: O(V (V + E) log V) for the closure, O(V²) for the tree.
func ApproximateTour(g *graph.Graph, opts ...Option) (Tour, error) {
	cfg, err := resolve(g, opts)
	if err != nil {
		return Tour{}, err
	}
	if g.NodeCount() == 1 {
		return Tour{Walk: []string{cfg.start}}, nil
	}

	mc, err := closure(g, cfg.weight)
	if err != nil {
		return Tour{}, err
	}
	root := g.Index(cfg.start)
	children := primChildren(mc.dist, root)
	order := preorder(children, root)
	order = append(order, root)

	nodes := g.Nodes()
	t := Tour{Walk: []string{cfg.start}}
	for i := 1; i < len(order); i++ {
		a, b := order[i-1], order[i]
		p, err := mc.trees[a].PathTo(nodes[b])
		if err != nil {
			return Tour{}, err
		}
		t.Walk = append(t.Walk, p[1:]...)
		t.Weight += mc.dist[a][b]
	}
	return t, nil
}

// metricClosure holds all-pairs shortest-path distances indexed by node
// insertion order, plus the per-source trees used to expand hops.
type metricClosure struct {
	dist  [][]float64
	trees []*path.Tree
}

func closure(g *graph.Graph, fn graph.WeightFunc) (*metricClosure, error) {
	nodes := g.Nodes()
	n := len(nodes)
	mc := &metricClosure{
		dist:  make([][]float64, n),
		trees: make([]*path.Tree, n),
	}
	for i, src := range nodes {
		tree, err := path.SingleSource(g, src, path.WithWeight(fn))
		if err != nil {
			return nil, err
		}
		if len(tree.Dist) != n {
			return nil, errors.New(errors.ErrCodeDisconnected,
				"graph is not connected: some nodes are unreachable from %q", src)
		}
		mc.trees[i] = tree
		mc.dist[i] = make([]float64, n)
		for j, dst := range nodes {
			mc.dist[i][j] = tree.Dist[dst]
		}
	}
	return mc, nil
}

// primChildren grows a minimum spanning tree over the dense matrix dist from
// root and returns each vertex's children sorted by index. The input must be
// a complete finite matrix.
func primChildren(dist [][]float64, root int) [][]int {
	n := len(dist)
	inTree := make([]bool, n)
	best := make([]float64, n)
	parent := make([]int, n)
	for v := range best {
		best[v] = math.Inf(1)
		parent[v] = -1
	}
	best[root] = 0

	children := make([][]int, n)
	for range n {
		u := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (u < 0 || best[v] < best[u]) {
				u = v
			}
		}
		inTree[u] = true
		if p := parent[u]; p >= 0 {
			children[p] = append(children[p], u)
		}
		for v := 0; v < n; v++ {
			if !inTree[v] && dist[u][v] < best[v] {
				best[v] = dist[u][v]
				parent[v] = u
			}
		}
	}
	for _, c := range children {
		slices.Sort(c)
	}
	return children
}

func preorder(children [][]int, root int) []int {
	out := make([]int, 0, len(children)+1)
	var visit func(int)
	visit = func(u int) {
		out = append(out, u)
		for _, c := range children[u] {
			visit(c)
		}
	}
	visit(root)
	return out
}
