// Package pkg provides the libraries behind citygraph, a toolkit for
// answering route questions about a weighted network of cities.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [graph] - The weighted undirected graph and its query algorithms
//     ([path], [centrality], [tour])
//  2. [engine] - Query facade and the six-question report
//  3. [render] - Node-link drawing via Graphviz and format conversion
//  4. [pipeline] - Cached report and render orchestration
//  5. [cache], [io], [dataset] - Storage, graph files, built-in data
//  6. [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow:
//
//	graph file or built-in dataset
//	         ↓
//	    [io] / [dataset] (decode a Spec)
//	         ↓
//	    [graph] (validated adjacency store)
//	         ↓
//	    [engine] (queries, report)
//	         ↓
//	    [pipeline] (cache lookups, rendering)
//	         ↓
//	    text, JSON, PNG/SVG/PDF/DOT
//
// # Quick Start
//
//	g, err := graph.Build(dataset.Spain())
//	if err != nil {
//	    return err
//	}
//	e := engine.New(g)
//	res, err := e.ShortestPath(ctx, "Murcia", "Badajoz")
//	// res.Path = [Murcia Badajoz], res.Weight = 500
//
// [graph]: github.com/matzehuels/citygraph/pkg/graph
// [path]: github.com/matzehuels/citygraph/pkg/graph/path
// [centrality]: github.com/matzehuels/citygraph/pkg/graph/centrality
// [tour]: github.com/matzehuels/citygraph/pkg/graph/tour
// [engine]: github.com/matzehuels/citygraph/pkg/engine
// [render]: github.com/matzehuels/citygraph/pkg/render
// [pipeline]: github.com/matzehuels/citygraph/pkg/pipeline
// [cache]: github.com/matzehuels/citygraph/pkg/cache
// [io]: github.com/matzehuels/citygraph/pkg/io
// [dataset]: github.com/matzehuels/citygraph/pkg/dataset
// [errors]: github.com/matzehuels/citygraph/pkg/errors
// [observability]: github.com/matzehuels/citygraph/pkg/observability
// [buildinfo]: github.com/matzehuels/citygraph/pkg/buildinfo
package pkg
