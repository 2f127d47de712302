package centrality

import (
	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/path"
)

// IsConnected reports whether every node is reachable from every other.
// A single node is connected. Returns an EMPTY_GRAPH error for a graph with
// no nodes.
func IsConnected(g *graph.Graph) (bool, error) {
	if g.NodeCount() == 0 {
		return false, errEmpty()
	}
	seen := reach(g, g.Nodes()[0], nil)
	return len(seen) == g.NodeCount(), nil
}

// Components returns the connected components of g. Components are ordered
// by their first node in insertion order, and each lists its nodes in
// insertion order.
func Components(g *graph.Graph) [][]string {
	comp := make(map[string]int, g.NodeCount())
	var out [][]string
	for _, id := range g.Nodes() {
		if _, ok := comp[id]; ok {
			out[comp[id]] = append(out[comp[id]], id)
			continue
		}
		idx := len(out)
		reach(g, id, func(v string) { comp[v] = idx })
		out = append(out, []string{id})
	}
	return out
}

// reach runs a breadth-first search from start and returns the visited set.
// visit, if non-nil, is called once per reached node.
func reach(g *graph.Graph, start string, visit func(string)) map[string]bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if visit != nil {
			visit(u)
		}
		g.EachNeighbor(u, func(n graph.Neighbor) bool {
			if !seen[n.ID] {
				seen[n.ID] = true
				queue = append(queue, n.ID)
			}
			return true
		})
	}
	return seen
}

// SingleSourceDistances returns the shortest-path distance from source to
// every node reachable from it, including source itself at distance 0.
// Returns a NODE_NOT_FOUND error if source is absent.
func SingleSourceDistances(g *graph.Graph, source string, opts ...Option) (path.DistanceMap, error) {
	tree, err := path.SingleSource(g, source, newConfig(opts).pathOpts()...)
	if err != nil {
		return nil, err
	}
	return tree.Dist, nil
}

// FarthestNode returns the reachable node with the greatest shortest-path
// distance from source, and that distance.
//
// Nodes are scanned in the order Dijkstra settled them and only a strictly
// greater distance replaces the current best, so ties go to the node
// encountered first. A source with no neighbors is its own farthest node at
// distance 0.
func FarthestNode(g *graph.Graph, source string, opts ...Option) (string, float64, error) {
	tree, err := path.SingleSource(g, source, newConfig(opts).pathOpts()...)
	if err != nil {
		return "", 0, err
	}
	best, bestDist := source, 0.0
	for _, id := range tree.Order {
		if d := tree.Dist[id]; d > bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist, nil
}

func errEmpty() error {
	return errors.New(errors.ErrCodeEmptyGraph, "graph has no nodes")
}

func errDisconnected(from string) error {
	return errors.New(errors.ErrCodeDisconnected, "graph is not connected: some nodes are unreachable from %q", from)
}
