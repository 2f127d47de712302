// Package centrality answers connectivity and distance-based centrality
// queries over a [graph.Graph]: connectivity, connected components,
// single-source distances, farthest node, eccentricity, radius, diameter,
// center, and periphery.
//
// Every distance is a weighted shortest-path distance computed by
// [path.SingleSource]. Pass [WithHops] to measure distance in edges instead.
//
// Queries that need a finite eccentricity for every node ([Center],
// [Periphery], [Radius], [Diameter], [Eccentricity]) fail with a
// DISCONNECTED_GRAPH error on a disconnected graph rather than reporting
// infinite values.
package centrality
