// Package pipeline runs the cached query and render stages shared by the CLI
// and the HTTP server.
//
// By centralizing caching here, both entry points produce identical reports
// and images for identical inputs, and a report computed by one can be served
// from the cache by the other when they share a backend.
//
// # Stages
//
//  1. Report: answer the canned questions about a graph ([Runner.Report])
//  2. Render: lay out the graph and render it as an image ([Runner.Render])
//
// Each stage is keyed on a content hash of the graph plus the options that
// affect its output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	report, err := runner.Report(ctx, engine.New(g), dataset.DefaultQuestions())
//
//	opts := pipeline.RenderOptions{Format: "svg", Title: dataset.Title}
//	svg, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"strings"

	"github.com/matzehuels/citygraph/pkg/cache"
	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the image format when none is requested.
	DefaultFormat = string(nodelink.FormatPNG)

	// DefaultLayout is the node placement algorithm.
	DefaultLayout = string(nodelink.LayoutSpring)

	// DefaultSeed seeds the spring layout so repeated runs match.
	DefaultSeed uint64 = 42

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 1.0

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = 8.0
)

// RenderOptions configures the render stage.
type RenderOptions struct {
	Format string
	Layout string
	Seed   uint64
	Title  string
	Scale  float64

	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects unknown
// formats, unknown layouts, and out-of-range scales.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	f, err := nodelink.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = string(f)

	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	o.Layout = strings.ToLower(o.Layout)
	switch nodelink.LayoutKind(o.Layout) {
	case nodelink.LayoutSpring, nodelink.LayoutCircular:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (want spring or circular)", o.Layout)
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, %g]", o.Scale, MaxScale)
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for these render options.
func (o RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
		Layout: o.Layout,
		Seed:   o.Seed,
		Title:  o.Title,
		Scale:  o.Scale,
	}
}

// DrawOptions converts o for [nodelink.Draw].
func (o RenderOptions) DrawOptions() nodelink.DrawOptions {
	return nodelink.DrawOptions{
		Layout:  nodelink.LayoutKind(o.Layout),
		Seed:    o.Seed,
		Format:  nodelink.Format(o.Format),
		Scale:   o.Scale,
		Options: nodelink.Options{Title: o.Title},
	}
}
