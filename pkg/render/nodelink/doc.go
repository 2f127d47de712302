// Package nodelink draws a city graph as a node-link diagram: cities as
// filled circles, roads as lines labelled with their distance.
//
// # Overview
//
// Drawing happens in three steps:
//
//  1. Layout: [SpringLayout] (force-directed, seeded) or [CircularLayout]
//     assigns each node a position in [-1, 1] x [-1, 1].
//  2. DOT: [ToDOT] writes an undirected Graphviz graph with those positions
//     pinned, node styling, edge labels from [EdgeLabels], and a title.
//  3. Render: [RenderSVG] runs Graphviz neato in-process; [RenderPNG] and
//     [RenderPDF] convert the SVG with rsvg-convert.
//
// [Draw] runs all three for the common case:
//
//	png, err := nodelink.Draw(ctx, g, nodelink.DrawOptions{
//	    Layout:  nodelink.LayoutSpring,
//	    Seed:    42,
//	    Format:  nodelink.FormatPNG,
//	    Scale:   2,
//	    Options: nodelink.Options{Title: "Grafo de Ciudades"},
//	})
//
// # Determinism
//
// The spring layout draws its starting positions from a seeded PCG
// generator, so the same graph and seed give byte-identical DOT output.
// Different seeds give different, equally valid drawings.
//
// # External Dependencies
//
// SVG rendering uses github.com/goccy/go-graphviz, which bundles Graphviz as
// WebAssembly and needs no system install. PNG and PDF need rsvg-convert
// (librsvg) on PATH.
package nodelink
