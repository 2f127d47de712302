package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/pipeline"
	"github.com/matzehuels/citygraph/pkg/render/nodelink"
)

const defaultOutput = "graph.png"

// renderOpts holds the command-line flags shared by render and report.
type renderOpts struct {
	output  string  // output file path, or "-" for stdout
	format  string  // png, svg, pdf, dot; inferred from output when empty
	layout  string  // spring or circular
	seed    uint64  // spring layout seed
	title   string  // heading drawn above the graph
	scale   float64 // PNG resolution multiplier
	refresh bool    // ignore cached images
}

func (o *renderOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", defaultOutput, "output file (- for stdout)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: png, svg, pdf, dot (default: from the output extension)")
	cmd.Flags().StringVar(&o.layout, "layout", pipeline.DefaultLayout, "node placement: spring, circular")
	cmd.Flags().Uint64Var(&o.seed, "seed", pipeline.DefaultSeed, "random seed for the spring layout")
	cmd.Flags().StringVar(&o.title, "title", "", "title drawn above the graph (default: the graph name)")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached images")
}

// pipelineOptions resolves the flags into render options for the runner.
func (o renderOpts) pipelineOptions(defaultTitle string) (pipeline.RenderOptions, error) {
	format := o.format
	if format == "" {
		format = formatFromOutput(o.output)
	}
	title := o.title
	if title == "" {
		title = defaultTitle
	}
	opts := pipeline.RenderOptions{
		Format:  format,
		Layout:  o.layout,
		Seed:    o.seed,
		Title:   title,
		Scale:   o.scale,
		Refresh: o.refresh,
	}
	return opts, opts.ValidateAndSetDefaults()
}

// formatFromOutput infers the image format from a file extension, falling
// back to PNG.
func formatFromOutput(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if f, err := nodelink.ParseFormat(ext); err == nil {
		return string(f)
	}
	return pipeline.DefaultFormat
}

// renderCommand creates the render command for drawing the graph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the graph as an image",
		Long: `Draw the graph with labelled city nodes and distance-labelled roads.

PNG and PDF output require rsvg-convert (librsvg) on PATH; SVG and DOT do not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}
			p := printer{w: cmd.OutOrStdout()}
			hit, err := c.renderTo(ctx, cmd, g, opts)
			if err != nil {
				return err
			}
			if opts.output != "-" {
				p.success("Rendered %s", opts.output)
				p.stats(g.NodeCount(), g.EdgeCount(), hit)
			}
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}

// renderTo renders g with the runner and writes the image to opts.output.
// It reports whether the image came from the cache.
func (c *CLI) renderTo(ctx context.Context, cmd *cobra.Command, g *graph.Graph, opts renderOpts) (bool, error) {
	ropts, err := opts.pipelineOptions(c.graphTitle())
	if err != nil {
		return false, err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return false, err
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	type result struct {
		data []byte
		hit  bool
	}
	res, err := spin(ctx, cmd.ErrOrStderr(), "Rendering "+ropts.Format+"...", func() (result, error) {
		data, hit, err := runner.RenderWithCacheInfo(ctx, g, ropts)
		return result{data, hit}, err
	})
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnsupported) {
			return false, fmt.Errorf("%w (try -f svg)", err)
		}
		return false, err
	}
	prog.done(fmt.Sprintf("Rendered %s (%d bytes)", ropts.Format, len(res.data)))

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(res.data)
		return res.hit, err
	}
	if err := os.WriteFile(opts.output, res.data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", opts.output, err)
	}
	return res.hit, nil
}
