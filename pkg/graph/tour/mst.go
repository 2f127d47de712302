package tour

import (
	"container/heap"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

// MinimumSpanningTree returns the edges of a minimum spanning tree of g and
// their total cost, grown with Prim's algorithm from the start node (first
// inserted node by default). Edge weights in the result are costs under the
// configured weight function.
//
// Errors: EMPTY_GRAPH, DISCONNECTED_GRAPH, or INVALID_EDGE if fn yields an
// invalid cost.
//
// Complexity: O(E log V).
func MinimumSpanningTree(g *graph.Graph, opts ...Option) ([]graph.Edge, float64, error) {
	cfg, err := resolve(g, opts)
	if err != nil {
		return nil, 0, err
	}
	fn, root := cfg.weight, cfg.start
	visited := map[string]bool{}
	mst := make([]graph.Edge, 0, g.NodeCount()-1)
	var total float64
	pq := &edgePQ{}

	push := func(u string) error {
		visited[u] = true
		var err error
		g.EachNeighbor(u, func(n graph.Neighbor) bool {
			if visited[n.ID] {
				return true
			}
			var w float64
			if w, err = graph.Cost(fn, u, n.ID, n.Weight); err != nil {
				return false
			}
			heap.Push(pq, candidate{edge: graph.Edge{U: u, V: n.ID, Weight: w}, seq: pq.next()})
			return true
		})
		return err
	}

	if err := push(root); err != nil {
		return nil, 0, err
	}
	for pq.Len() > 0 && len(mst) < g.NodeCount()-1 {
		c := heap.Pop(pq).(candidate)
		if visited[c.edge.V] {
			continue
		}
		mst = append(mst, c.edge)
		total += c.edge.Weight
		if err := push(c.edge.V); err != nil {
			return nil, 0, err
		}
	}
	if len(mst) < g.NodeCount()-1 {
		return nil, 0, errors.New(errors.ErrCodeDisconnected, "graph is not connected: no spanning tree exists")
	}
	return mst, total, nil
}

// candidate is an edge waiting in the Prim frontier. seq preserves push
// order so equal weights pop deterministically.
type candidate struct {
	edge graph.Edge
	seq  int
}

type edgePQ struct {
	items []candidate
	seq   int
}

func (pq *edgePQ) next() int {
	pq.seq++
	return pq.seq
}

func (pq *edgePQ) Len() int { return len(pq.items) }

func (pq *edgePQ) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.edge.Weight != b.edge.Weight {
		return a.edge.Weight < b.edge.Weight
	}
	return a.seq < b.seq
}

func (pq *edgePQ) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *edgePQ) Push(x any) { pq.items = append(pq.items, x.(candidate)) }

func (pq *edgePQ) Pop() any {
	n := len(pq.items)
	it := pq.items[n-1]
	pq.items = pq.items[:n-1]
	return it
}
