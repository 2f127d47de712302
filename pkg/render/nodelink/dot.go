package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/citygraph/pkg/graph"
)

// DefaultNodeColor is the light purple fill used for city nodes.
const DefaultNodeColor = "#d8b3d8"

// Options configures the DOT output.
type Options struct {
	// Title is drawn above the graph. Empty means no title.
	Title string
	// NodeColor is the node fill color. Defaults to DefaultNodeColor.
	NodeColor string
	// Spread is the number of inches one layout unit covers. Defaults to 3,
	// so a [-1, 1] layout spans six inches.
	Spread float64
}

func (o Options) withDefaults() Options {
	if o.NodeColor == "" {
		o.NodeColor = DefaultNodeColor
	}
	if o.Spread <= 0 {
		o.Spread = 3
	}
	return o
}

// EdgeKey identifies an undirected edge by its endpoints as stored.
type EdgeKey struct {
	U, V string
}

// EdgeLabels returns the label of every edge: its weight formatted with %g.
func EdgeLabels(g *graph.Graph) map[EdgeKey]string {
	edges := g.Edges()
	out := make(map[EdgeKey]string, len(edges))
	for _, e := range edges {
		out[EdgeKey{U: e.U, V: e.V}] = fmt.Sprintf("%g", e.Weight)
	}
	return out
}

// ToDOT converts g to an undirected Graphviz DOT graph for the neato engine.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes present in layout are pinned at their positions; others are left
// for neato to place. Nodes are drawn as filled circles with bold labels, and
// every edge with an entry in labels carries that text.
func ToDOT(g *graph.Graph, layout Layout, labels map[EdgeKey]string, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  pad=0.4;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=t;\n")
		buf.WriteString("  fontsize=22;\n")
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fontname=\"Helvetica-Bold\", fontsize=14, width=1.1, fixedsize=true];\n",
		opts.NodeColor, opts.NodeColor)
	buf.WriteString("  edge [color=\"#555555\", penwidth=1.5, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", id)}
		if p, ok := layout[id]; ok {
			attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X*opts.Spread, p.Y*opts.Spread))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if label, ok := labels[EdgeKey{U: e.U, V: e.V}]; ok {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", e.U, e.V, label)
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.U, e.V)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
