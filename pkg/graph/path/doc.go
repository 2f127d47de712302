// Package path implements shortest-path and simple-path queries over a
// [graph.Graph].
//
// # Shortest paths
//
// [SingleSource] runs Dijkstra's algorithm with a binary heap and lazy
// decrease-key, returning a [Tree] of final distances, predecessors, and the
// order in which nodes were settled. [ShortestPath] reconstructs a single
// path from that tree:
//
//	p, err := path.ShortestPath(g, "Murcia", "Badajoz")
//	// p = [Murcia Badajoz], weight 500
//
// Edge costs default to the stored weights. [WithHops] counts edges instead,
// and [WithWeight] accepts any non-negative [graph.WeightFunc].
//
// # Simple paths
//
// [AllSimplePaths] enumerates every path that never repeats a node, lazily,
// as an [iter.Seq]:
//
//	seq, _ := path.AllSimplePaths(g, "Sevilla", "Zaragoza")
//	for p := range seq {
//	    fmt.Println(p)
//	}
//
// [CountSimplePaths] drains the sequence and returns its length.
package path
