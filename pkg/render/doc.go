// Package render converts rendered graph images between formats.
//
// # Overview
//
// Graph drawing happens in the [nodelink] subpackage, which lays out the
// city network, emits Graphviz DOT, and renders it to SVG. This package
// turns that SVG into raster or print formats:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # External Tools
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). Use
// [Available] to check for it before offering those formats. When it is
// missing the conversion fails with an UNSUPPORTED error that explains how
// to install it.
//
// [nodelink]: github.com/matzehuels/citygraph/pkg/render/nodelink
package render
