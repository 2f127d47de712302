// Package tour computes approximate traveling-salesman tours and minimum
// spanning trees over a [graph.Graph].
//
// [ApproximateTour] uses the double-tree heuristic on the metric closure of
// the graph, so it works on sparse road networks where not every pair of
// cities is joined by an edge. The returned walk is closed and may revisit
// nodes while travelling between cities along shortest paths. Its weight is
// at most twice the optimum.
//
//	t, err := tour.ApproximateTour(g, tour.WithStart("Madrid"))
//	fmt.Println(t.Walk, t.Weight)
package tour
