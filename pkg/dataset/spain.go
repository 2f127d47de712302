// Package dataset holds the built-in network of Spanish cities and the
// questions the report command asks about it.
package dataset

import "github.com/matzehuels/citygraph/pkg/graph"

// Title is the heading drawn above the rendered network.
const Title = "Grafo de Ciudades"

// Spain returns the built-in city network: six cities joined by six roads,
// weighted by distance in kilometres.
func Spain() graph.Spec {
	return graph.Spec{
		Name:  "spain",
		Nodes: []string{"Murcia", "Badajoz", "Barcelona", "Sevilla", "Zaragoza", "Madrid"},
		Edges: []graph.EdgeSpec{
			{From: "Murcia", To: "Badajoz", Weight: 500},
			{From: "Murcia", To: "Barcelona", Weight: 600},
			{From: "Barcelona", To: "Zaragoza", Weight: 300},
			{From: "Zaragoza", To: "Madrid", Weight: 320},
			{From: "Madrid", To: "Badajoz", Weight: 400},
			{From: "Sevilla", To: "Badajoz", Weight: 200},
		},
	}
}

// Questions parameterizes the six canned queries of a report.
type Questions struct {
	// ShortestFrom and ShortestTo are the endpoints of the shortest-path query.
	ShortestFrom string `json:"shortest_from" toml:"shortest_from" yaml:"shortest_from"`
	ShortestTo   string `json:"shortest_to" toml:"shortest_to" yaml:"shortest_to"`

	// FarthestFrom is the source of the farthest-node query.
	FarthestFrom string `json:"farthest_from" toml:"farthest_from" yaml:"farthest_from"`

	// CenterHops computes the center by hop count instead of weight.
	CenterHops bool `json:"center_hops" toml:"center_hops" yaml:"center_hops"`

	// PathsFrom and PathsTo are the endpoints of the simple-path count.
	PathsFrom string `json:"paths_from" toml:"paths_from" yaml:"paths_from"`
	PathsTo   string `json:"paths_to" toml:"paths_to" yaml:"paths_to"`

	// TourStart is where the tour begins; empty means the first node.
	TourStart string `json:"tour_start,omitempty" toml:"tour_start" yaml:"tour_start,omitempty"`
}

// DefaultQuestions returns the questions asked of the built-in network.
// The center is measured in hops, matching the usual textbook definition.
func DefaultQuestions() Questions {
	return Questions{
		ShortestFrom: "Murcia",
		ShortestTo:   "Badajoz",
		FarthestFrom: "Barcelona",
		CenterHops:   true,
		PathsFrom:    "Sevilla",
		PathsTo:      "Zaragoza",
	}
}
