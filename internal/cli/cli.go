// Package cli implements the citygraph command-line interface.
//
// Every command loads one graph (the built-in Spanish city network, or the
// file given with --graph), answers a query about it, and prints the result
// with lipgloss styling. Reports and rendered images are cached between runs
// in the user cache directory, or in Redis when --redis-url is set.
//
// # Commands
//
//   - report: answer the six canned questions and draw the network
//   - path, paths, connected, distances, farthest, eccentricity, center,
//     tour, mst: individual queries
//   - render: draw the network as PNG, SVG, PDF, or DOT
//   - export: write the graph as JSON, TOML, or YAML
//   - serve: run the HTTP API
//   - explore: browse the report interactively
//   - cache: manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/buildinfo"
	"github.com/matzehuels/citygraph/pkg/cache"
	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/graph"
	graphio "github.com/matzehuels/citygraph/pkg/io"
	"github.com/matzehuels/citygraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "citygraph"

	// envRedisURL supplies the default for --redis-url.
	envRedisURL = "CITYGRAPH_REDIS_URL"

	// redisPrefix namespaces every key the CLI writes to Redis.
	redisPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	graphPath  string
	noCache    bool
	redisURL   string
	cacheScope string
	jsonOutput bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "citygraph answers route questions about a network of cities",
		Long:         `citygraph loads a weighted undirected graph of cities and answers questions about it: shortest routes, connectivity, the most central city, how many distinct routes join two cities, and a short tour through all of them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&c.graphPath, "graph", "g", "", "graph file (.json, .toml, .yaml); defaults to the built-in Spanish cities")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching of reports and images")
	pf.BoolVar(&c.jsonOutput, "json", false, "print query results as JSON")
	pf.StringVar(&c.cacheScope, "cache-scope", "", "namespace for cache keys, so several deployments can share one cache")
	pf.StringVar(&c.redisURL, "redis-url", os.Getenv(envRedisURL), "cache in Redis instead of the local cache directory (env "+envRedisURL+")")

	// Register all subcommands
	root.AddCommand(c.reportCommand())
	for _, cmd := range c.queryCommands() {
		root.AddCommand(cmd)
	}
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Graph Loading
// =============================================================================

// loadGraph reads the --graph file, or builds the built-in dataset.
func (c *CLI) loadGraph(ctx context.Context) (*graph.Graph, error) {
	logger := loggerFromContext(ctx)
	if c.graphPath == "" {
		logger.Debug("using built-in dataset", "name", dataset.Spain().Name)
		return graph.Build(dataset.Spain())
	}
	g, err := graphio.ReadFile(c.graphPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded graph", "file", c.graphPath, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// graphTitle is the heading for rendered images of the loaded graph.
func (c *CLI) graphTitle() string {
	if c.graphPath == "" {
		return dataset.Title
	}
	return filepath.Base(c.graphPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.cacheScope != "" {
		keyer = cache.NewScopedKeyer(nil, c.cacheScope+":")
	}
	return pipeline.NewRunner(cache.Instrument(backend), keyer, loggerFromContext(ctx)), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisURL != "" {
		return cache.NewRedisCache(ctx, c.redisURL, redisPrefix)
	}
	dir, err := cacheDir()
	if err != nil {
		loggerFromContext(ctx).Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/citygraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
