package path

import (
	"container/heap"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

// DistanceMap maps each node reachable from a source to its shortest-path
// distance. Unreachable nodes are absent rather than infinite.
type DistanceMap map[string]float64

// Tree is the result of a single-source shortest-path run.
type Tree struct {
	Source string
	// Dist holds the final distance of every reachable node.
	Dist DistanceMap
	// Prev maps each reachable node except Source to its predecessor on a
	// shortest path from Source.
	Prev map[string]string
	// Order lists reachable nodes in the order their distance became final.
	// It starts with Source and is non-decreasing in distance.
	Order []string
}

// PathTo reconstructs the shortest path from t.Source to target.
// Returns a NO_PATH error if target was not reached.
func (t *Tree) PathTo(target string) (Path, error) {
	if _, ok := t.Dist[target]; !ok {
		return nil, errors.New(errors.ErrCodeNoPath, "no path from %q to %q", t.Source, target)
	}
	var p Path
	for v := target; v != t.Source; v = t.Prev[v] {
		p = append(p, v)
	}
	p = append(p, t.Source)
	p.reverse()
	return p, nil
}

// SingleSource runs Dijkstra's algorithm from source over g.
//
// Edge costs come from the configured weight function (stored weights by
// default). Ties between equal tentative distances are broken by settle
// order, then by node insertion order, so the result is deterministic.
//
// Returns a NODE_NOT_FOUND error if source is absent and an INVALID_EDGE
// error if the weight function yields a negative or non-finite cost.
//
// Complexity: O((V + E) log V) with lazy decrease-key.
func SingleSource(g *graph.Graph, source string, opts ...Option) (*Tree, error) {
	cfg := newConfig(opts)
	if !g.HasNode(source) {
		return nil, errors.NodeNotFound(source)
	}

	r := &runner{
		g:       g,
		weight:  cfg.weight,
		visited: make(map[string]bool, g.NodeCount()),
		tree: &Tree{
			Source: source,
			Dist:   DistanceMap{source: 0},
			Prev:   make(map[string]string),
		},
	}
	heap.Push(&r.pq, &item{id: source, dist: 0, rank: g.Index(source)})
	if err := r.process(); err != nil {
		return nil, err
	}
	return r.tree, nil
}

// runner holds the mutable state of one Dijkstra execution.
type runner struct {
	g       *graph.Graph
	weight  graph.WeightFunc
	visited map[string]bool
	pq      itemPQ
	tree    *Tree
}

func (r *runner) process() error {
	for r.pq.Len() > 0 {
		it := heap.Pop(&r.pq).(*item)
		if r.visited[it.id] {
			continue // stale entry
		}
		r.visited[it.id] = true
		r.tree.Order = append(r.tree.Order, it.id)
		if err := r.relax(it.id); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) relax(u string) error {
	var err error
	r.g.EachNeighbor(u, func(n graph.Neighbor) bool {
		if r.visited[n.ID] {
			return true
		}
		var w float64
		if w, err = graph.Cost(r.weight, u, n.ID, n.Weight); err != nil {
			return false
		}
		nd := r.tree.Dist[u] + w
		if cur, seen := r.tree.Dist[n.ID]; seen && nd >= cur {
			return true
		}
		r.tree.Dist[n.ID] = nd
		r.tree.Prev[n.ID] = u
		heap.Push(&r.pq, &item{id: n.ID, dist: nd, rank: r.g.Index(n.ID)})
		return true
	})
	return err
}

// item is a heap entry. rank is the node's insertion index and breaks ties
// between equal distances.
type item struct {
	id   string
	dist float64
	rank int
}

// itemPQ is a min-heap of *item ordered by (dist, rank).
type itemPQ []*item

func (pq itemPQ) Len() int { return len(pq) }

func (pq itemPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].rank < pq[j].rank
}

func (pq itemPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *itemPQ) Push(x any) { *pq = append(*pq, x.(*item)) }

func (pq *itemPQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
