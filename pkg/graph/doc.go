// Package graph provides the weighted undirected graph store used by every
// citygraph query.
//
// # Overview
//
// A [Graph] holds a set of string-identified nodes and at most one weighted
// edge per unordered node pair. Weights are non-negative, finite numbers
// (road distances in the built-in dataset). Self-loops are rejected.
//
// Nodes and edges keep their insertion order. Every slice this package
// returns follows it, and the query packages use it as the tie-break order,
// so results are reproducible run to run.
//
// # Construction
//
// Build a graph from a [Spec], the same structure graph files decode into:
//
//	g, err := graph.Build(graph.Spec{
//	    Nodes: []string{"Murcia", "Badajoz"},
//	    Edges: []graph.EdgeSpec{{From: "Murcia", To: "Badajoz", Weight: 500}},
//	})
//
// or incrementally with [Graph.AddNode] and [Graph.AddEdge]. AddEdge creates
// missing endpoints. Once built, the graph is treated as immutable: query
// packages only read it and never share mutable state between calls.
//
// # Weight Functions
//
// Queries take an optional [WeightFunc] to reinterpret edge costs. [EdgeWeight]
// is the identity; [HopCount] counts edges instead, which is what an
// unweighted center or eccentricity uses.
//
// # Subpackages
//
//   - graph/path: shortest paths, single-source distances, simple paths
//   - graph/centrality: connectivity, eccentricity, radius, center
//   - graph/tour: minimum spanning tree and the approximate tour
package graph
