package path

import (
	"slices"
	"strings"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

// Path is an ordered sequence of nodes in which consecutive nodes are joined
// by an edge.
type Path []string

// String renders the path as "A -> B -> C".
func (p Path) String() string { return strings.Join(p, " -> ") }

// Hops returns the number of edges on the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Contains reports whether id occurs on the path.
func (p Path) Contains(id string) bool { return slices.Contains(p, id) }

func (p Path) reverse() { slices.Reverse(p) }

// ShortestPath returns a minimum-total-weight path from source to target.
// A path from a node to itself is the single-node path.
//
// Returns a NODE_NOT_FOUND error if either endpoint is absent and a NO_PATH
// error if they lie in different connected components. Among equal-weight
// paths the one found first by Dijkstra's exploration order is returned.
func ShortestPath(g *graph.Graph, source, target string, opts ...Option) (Path, error) {
	if !g.HasNode(target) {
		return nil, errors.NodeNotFound(target)
	}
	tree, err := SingleSource(g, source, opts...)
	if err != nil {
		return nil, err
	}
	return tree.PathTo(target)
}

// Weight returns the total cost of p under fn (stored weights if nil).
// Returns a NO_PATH error if two consecutive nodes are not adjacent.
func Weight(g *graph.Graph, p Path, fn graph.WeightFunc) (float64, error) {
	var total float64
	for i := 1; i < len(p); i++ {
		w, ok := g.Weight(p[i-1], p[i])
		if !ok {
			return 0, errors.New(errors.ErrCodeNoPath, "%q and %q are not adjacent", p[i-1], p[i])
		}
		c, err := graph.Cost(fn, p[i-1], p[i], w)
		if err != nil {
			return 0, err
		}
		total += c
	}
	return total, nil
}
