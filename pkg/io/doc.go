// Package io reads and writes city graphs as JSON, TOML, or YAML files.
//
// # Overview
//
// Every format carries the same three fields: an optional name, a list of
// nodes, and a list of weighted edges. Nodes appear in the order they should
// be inserted, which fixes the tie-breaking order of every query. Nodes that
// only appear as edge endpoints are appended after the listed ones.
//
// # JSON Format
//
//	{
//	  "name": "spain",
//	  "nodes": ["Murcia", "Badajoz", "Sevilla"],
//	  "edges": [
//	    {"from": "Murcia", "to": "Badajoz", "weight": 500},
//	    {"from": "Sevilla", "to": "Badajoz", "weight": 200}
//	  ]
//	}
//
// # TOML Format
//
//	name = "spain"
//	nodes = ["Murcia", "Badajoz", "Sevilla"]
//
//	[[edges]]
//	from = "Murcia"
//	to = "Badajoz"
//	weight = 500.0
//
// # YAML Format
//
//	name: spain
//	nodes: [Murcia, Badajoz, Sevilla]
//	edges:
//	  - {from: Murcia, to: Badajoz, weight: 500}
//
// # Validation
//
// Decoded content goes through [graph.Build], so files with self-loops,
// negative weights, or empty ids are rejected with the same coded errors the
// store returns, wrapped with the position of the offending item.
//
// # Usage
//
//	g, err := io.ReadFile("cities.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := io.WriteFile(g, "cities.json"); err != nil {
//	    return err
//	}
package io
