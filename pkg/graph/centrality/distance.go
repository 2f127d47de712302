package centrality

import (
	"math"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/path"
)

// tolerance is the relative slack used when comparing eccentricities, so
// that sums of float weights taken along different paths still compare equal.
const tolerance = 1e-9

// Eccentricity returns the greatest shortest-path distance from node to any
// other node.
//
// Errors: EMPTY_GRAPH, NODE_NOT_FOUND, or DISCONNECTED_GRAPH when some node
// is unreachable from node (eccentricity would be infinite).
func Eccentricity(g *graph.Graph, node string, opts ...Option) (float64, error) {
	if g.NodeCount() == 0 {
		return 0, errEmpty()
	}
	return eccentricity(g, node, newConfig(opts).pathOpts())
}

func eccentricity(g *graph.Graph, node string, opts []path.Option) (float64, error) {
	tree, err := path.SingleSource(g, node, opts...)
	if err != nil {
		return 0, err
	}
	if len(tree.Dist) != g.NodeCount() {
		return 0, errDisconnected(node)
	}
	var ecc float64
	for _, d := range tree.Dist {
		ecc = math.Max(ecc, d)
	}
	return ecc, nil
}

// Eccentricities returns the eccentricity of every node. It runs one
// single-source search per node: O(V (V + E) log V).
func Eccentricities(g *graph.Graph, opts ...Option) (map[string]float64, error) {
	if g.NodeCount() == 0 {
		return nil, errEmpty()
	}
	popts := newConfig(opts).pathOpts()
	out := make(map[string]float64, g.NodeCount())
	for _, id := range g.Nodes() {
		e, err := eccentricity(g, id, popts)
		if err != nil {
			return nil, err
		}
		out[id] = e
	}
	return out, nil
}

// Radius returns the minimum eccentricity over all nodes.
func Radius(g *graph.Graph, opts ...Option) (float64, error) {
	ecc, err := Eccentricities(g, opts...)
	if err != nil {
		return 0, err
	}
	return extreme(ecc, math.Min), nil
}

// Diameter returns the maximum eccentricity over all nodes.
func Diameter(g *graph.Graph, opts ...Option) (float64, error) {
	ecc, err := Eccentricities(g, opts...)
	if err != nil {
		return 0, err
	}
	return extreme(ecc, math.Max), nil
}

// Center returns the nodes whose eccentricity equals the radius, in node
// insertion order. The result is never empty for a connected graph.
//
// Errors: EMPTY_GRAPH, DISCONNECTED_GRAPH.
func Center(g *graph.Graph, opts ...Option) ([]string, error) {
	return byEccentricity(g, math.Min, opts)
}

// Periphery returns the nodes whose eccentricity equals the diameter, in node
// insertion order.
func Periphery(g *graph.Graph, opts ...Option) ([]string, error) {
	return byEccentricity(g, math.Max, opts)
}

func byEccentricity(g *graph.Graph, pick func(a, b float64) float64, opts []Option) ([]string, error) {
	ecc, err := Eccentricities(g, opts...)
	if err != nil {
		return nil, err
	}
	target := extreme(ecc, pick)
	var out []string
	for _, id := range g.Nodes() {
		if approxEqual(ecc[id], target) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "no node matches eccentricity %v", target)
	}
	return out, nil
}

func extreme(ecc map[string]float64, pick func(a, b float64) float64) float64 {
	first := true
	var v float64
	for _, e := range ecc {
		if first {
			v, first = e, false
			continue
		}
		v = pick(v, e)
	}
	return v
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
