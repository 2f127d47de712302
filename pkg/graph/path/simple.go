package path

import (
	"context"
	"iter"
	"slices"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

// AllSimplePaths returns an iterator over every simple path from source to
// target. A simple path never repeats a node.
//
// Paths are produced lazily by depth-first search, exploring neighbors in
// edge insertion order, so the enumeration is complete, duplicate-free, and
// deterministic. The caller may stop early by breaking out of the range loop.
// When source == target the sequence is empty.
//
// Endpoint validation happens before the iterator is returned: a missing
// endpoint yields a NODE_NOT_FOUND error and a nil sequence.
//
// The number of simple paths is exponential in the worst case; use
// WithCutoff to bound the search on dense graphs, and WithContext to make it
// cancellable.
func AllSimplePaths(g *graph.Graph, source, target string, opts ...Option) (iter.Seq[Path], error) {
	for _, id := range []string{source, target} {
		if !g.HasNode(id) {
			return nil, errors.NodeNotFound(id)
		}
	}
	cfg := newConfig(opts)

	return func(yield func(Path) bool) {
		if source == target {
			return
		}
		e := &enumerator{
			g:      g,
			target: target,
			cutoff: cfg.cutoff,
			ctx:    cfg.ctx,
			onPath: map[string]bool{source: true},
			stack:  Path{source},
			yield:  yield,
		}
		e.walk(source)
	}, nil
}

// CountSimplePaths returns the number of simple paths from source to target.
func CountSimplePaths(g *graph.Graph, source, target string, opts ...Option) (int, error) {
	seq, err := AllSimplePaths(g, source, target, opts...)
	if err != nil {
		return 0, err
	}
	n := 0
	for range seq {
		n++
	}
	return n, nil
}

type enumerator struct {
	g      *graph.Graph
	target string
	cutoff int
	ctx    context.Context
	onPath map[string]bool
	stack  Path
	yield  func(Path) bool
}

// walk extends the current stack from u. It returns false once the consumer
// has asked to stop.
func (e *enumerator) walk(u string) bool {
	if e.cutoff > 0 && e.stack.Hops() >= e.cutoff {
		return true
	}
	cont := true
	e.g.EachNeighbor(u, func(n graph.Neighbor) bool {
		if e.ctx != nil && e.ctx.Err() != nil {
			cont = false
			return false
		}
		if e.onPath[n.ID] {
			return true
		}
		e.stack = append(e.stack, n.ID)
		if n.ID == e.target {
			cont = e.yield(slices.Clone(e.stack))
		} else {
			e.onPath[n.ID] = true
			cont = e.walk(n.ID)
			delete(e.onPath, n.ID)
		}
		e.stack = e.stack[:len(e.stack)-1]
		return cont
	})
	return cont
}
