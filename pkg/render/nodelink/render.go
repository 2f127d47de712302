package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/observability"
	"github.com/matzehuels/citygraph/pkg/render"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG, FormatPDF, FormatDOT:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want png, svg, pdf, or dot)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz"
	}
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine, which
// honors the pinned positions written by [ToDOT].
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render produces the image bytes for format. FormatDOT returns the DOT
// source unchanged. Render events are reported to the observability hooks.
func Render(ctx context.Context, dot string, format Format, scale float64) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(format))
	start := time.Now()

	var out []byte
	var err error
	switch format {
	case FormatDOT:
		out = []byte(dot)
	case FormatSVG:
		out, err = RenderSVG(ctx, dot)
	case FormatPNG:
		out, err = RenderPNG(ctx, dot, scale)
	case FormatPDF:
		out, err = RenderPDF(ctx, dot)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", format)
	}

	hooks.OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	return out, err
}

// DrawOptions configures [Draw].
type DrawOptions struct {
	Layout LayoutKind
	Seed   uint64
	Format Format
	Scale  float64
	Options
}

// Draw lays out g, labels every edge with its weight, and renders the result
// in one step.
func Draw(ctx context.Context, g *graph.Graph, opts DrawOptions) ([]byte, error) {
	if opts.Layout == "" {
		opts.Layout = LayoutSpring
	}
	if opts.Format == "" {
		opts.Format = FormatPNG
	}

	hooks := observability.Render()
	hooks.OnLayoutStart(ctx, string(opts.Layout), g.NodeCount())
	start := time.Now()
	layout := Compute(g, opts.Layout, opts.Seed)
	hooks.OnLayoutComplete(ctx, string(opts.Layout), time.Since(start))

	dot := ToDOT(g, layout, EdgeLabels(g), opts.Options)
	return Render(ctx, dot, opts.Format, opts.Scale)
}
