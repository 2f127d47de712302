package cli

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/engine"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/centrality"
	"github.com/matzehuels/citygraph/pkg/graph/path"
	"github.com/matzehuels/citygraph/pkg/graph/tour"
)

// queryCommands returns one command per engine query.
func (c *CLI) queryCommands() []*cobra.Command {
	return []*cobra.Command{
		c.pathCommand(),
		c.pathsCommand(),
		c.connectedCommand(),
		c.distancesCommand(),
		c.farthestCommand(),
		c.eccentricityCommand(),
		c.centerCommand(),
		c.tourCommand(),
		c.mstCommand(),
	}
}

// =============================================================================
// Helpers
// =============================================================================

// queryFunc runs one query and prints its result.
type queryFunc func(ctx context.Context, e *engine.Engine, p printer) error

// runQuery loads the graph and runs fn against it.
func (c *CLI) runQuery(cmd *cobra.Command, fn queryFunc) error {
	ctx := cmd.Context()
	g, err := c.loadGraph(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, engine.New(g), printer{w: cmd.OutOrStdout()})
}

// emit prints v as JSON when --json is set, or calls human otherwise.
func (c *CLI) emit(p printer, v any, human func()) error {
	if c.jsonOutput {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human()
	return nil
}

// completeNodes offers the loaded graph's node names for positional args.
func (c *CLI) completeNodes(maxArgs int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		g, err := c.loadGraph(context.Background())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var out []string
		for _, n := range g.Nodes() {
			if strings.HasPrefix(strings.ToLower(n), strings.ToLower(toComplete)) {
				out = append(out, n)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func centralityOptions(hops bool) []centrality.Option {
	if hops {
		return []centrality.Option{centrality.WithHops()}
	}
	return nil
}

// =============================================================================
// Commands
// =============================================================================

func (c *CLI) pathCommand() *cobra.Command {
	var hops bool

	cmd := &cobra.Command{
		Use:               "path FROM TO",
		Short:             "Find the shortest route between two cities",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodes(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				var opts []path.Option
				if hops {
					opts = append(opts, path.WithHops())
				}
				res, err := e.ShortestPath(ctx, args[0], args[1], opts...)
				if err != nil {
					return err
				}
				return c.emit(p, res, func() {
					p.keyValue("Route", formatRoute(res.Path))
					p.keyValue("Distance", formatWeight(res.Weight))
					p.keyValue("Hops", fmt.Sprint(res.Path.Hops()))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&hops, "hops", false, "minimize the number of roads instead of the distance")
	return cmd
}

func (c *CLI) pathsCommand() *cobra.Command {
	var (
		cutoff int
		list   bool
	)

	cmd := &cobra.Command{
		Use:               "paths FROM TO",
		Short:             "Count the distinct routes between two cities",
		Long:              `Count the simple paths (routes that never revisit a city) between two cities. The count grows exponentially with the graph size; use --cutoff on large graphs.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNodes(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				paths, err := e.SimplePaths(ctx, args[0], args[1], path.WithCutoff(cutoff))
				if err != nil {
					return err
				}
				out := map[string]any{"count": len(paths)}
				if list {
					out["paths"] = paths
				}
				return c.emit(p, out, func() {
					p.keyValue("Routes", StyleNumber.Render(fmt.Sprint(len(paths))))
					if !list {
						return
					}
					for _, route := range paths {
						w, _ := path.Weight(e.Graph(), route, nil)
						p.line("  " + formatRoute(route) + StyleDim.Render(" ("+fmt.Sprintf("%g", w)+")"))
					}
				})
			})
		},
	}

	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "only count routes of at most N roads (0 = no limit)")
	cmd.Flags().BoolVar(&list, "list", false, "print every route with its distance")
	return cmd
}

func (c *CLI) connectedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connected",
		Short: "Check whether every pair of cities is joined by a route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				ok, err := e.IsConnected(ctx)
				if err != nil {
					return err
				}
				components := e.Components(ctx)
				out := map[string]any{"connected": ok, "components": components}
				return c.emit(p, out, func() {
					if ok {
						p.success("Connected: every city can reach every other")
						return
					}
					p.warning("Not connected: %d separate groups", len(components))
					for _, comp := range components {
						p.detail("%s", strings.Join(comp, ", "))
					}
				})
			})
		},
	}
}

func (c *CLI) distancesCommand() *cobra.Command {
	var hops bool

	cmd := &cobra.Command{
		Use:               "distances FROM",
		Short:             "List the shortest distance from a city to every reachable city",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				dist, err := e.Distances(ctx, args[0], centralityOptions(hops)...)
				if err != nil {
					return err
				}
				return c.emit(p, dist, func() {
					for _, id := range byDistance(e.Graph(), dist) {
						p.keyValue(id, formatWeight(dist[id]))
					}
				})
			})
		},
	}

	cmd.Flags().BoolVar(&hops, "hops", false, "count roads instead of distance")
	return cmd
}

// byDistance orders the reached nodes by distance, then by insertion order.
func byDistance(g *graph.Graph, dist path.DistanceMap) []string {
	ids := make([]string, 0, len(dist))
	for id := range dist {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(dist[a], dist[b]); c != 0 {
			return c
		}
		return cmp.Compare(g.Index(a), g.Index(b))
	})
	return ids
}

func (c *CLI) farthestCommand() *cobra.Command {
	var hops bool

	cmd := &cobra.Command{
		Use:               "farthest FROM",
		Short:             "Find the reachable city farthest from a city",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				f, err := e.FarthestNode(ctx, args[0], centralityOptions(hops)...)
				if err != nil {
					return err
				}
				return c.emit(p, f, func() {
					p.keyValue("Farthest", StyleHighlight.Render(f.Node))
					p.keyValue("Distance", formatWeight(f.Distance))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&hops, "hops", false, "count roads instead of distance")
	return cmd
}

func (c *CLI) eccentricityCommand() *cobra.Command {
	var hops bool

	cmd := &cobra.Command{
		Use:               "eccentricity NODE",
		Short:             "Show the greatest distance from a city to any other",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNodes(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				ecc, err := e.Eccentricity(ctx, args[0], centralityOptions(hops)...)
				if err != nil {
					return err
				}
				out := map[string]any{"node": args[0], "eccentricity": ecc}
				return c.emit(p, out, func() {
					p.keyValue(args[0], formatWeight(ecc))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&hops, "hops", false, "count roads instead of distance")
	return cmd
}

func (c *CLI) centerCommand() *cobra.Command {
	var hops, periphery bool

	cmd := &cobra.Command{
		Use:   "center",
		Short: "Find the most central cities",
		Long:  `Find the cities whose greatest distance to any other city is smallest. With --periphery, find the cities where it is largest instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				opts := centralityOptions(hops)
				label, query := "Center", e.Center
				if periphery {
					label, query = "Periphery", e.Periphery
				}
				nodes, err := query(ctx, opts...)
				if err != nil {
					return err
				}
				return c.emit(p, map[string]any{strings.ToLower(label): nodes}, func() {
					styled := make([]string, len(nodes))
					for i, n := range nodes {
						styled[i] = StyleHighlight.Render(n)
					}
					p.keyValue(label, strings.Join(styled, ", "))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&hops, "hops", false, "measure by number of roads instead of distance")
	cmd.Flags().BoolVar(&periphery, "periphery", false, "find the least central cities instead")
	return cmd
}

func (c *CLI) tourCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Plan a short round trip through every city",
		Long:  `Plan a closed walk that visits every city and returns to the start. The walk is at most twice as long as the best possible one; it may pass through a city more than once.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				var opts []tour.Option
				if start != "" {
					opts = append(opts, tour.WithStart(start))
				}
				t, err := e.Tour(ctx, opts...)
				if err != nil {
					return err
				}
				return c.emit(p, t, func() {
					p.keyValue("Tour", formatRoute(t.Walk))
					p.keyValue("Distance", formatWeight(t.Weight))
				})
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "city to start and end at (default: the first city)")
	_ = cmd.RegisterFlagCompletionFunc("start", c.completeNodes(1))
	return cmd
}

func (c *CLI) mstCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mst",
		Short: "Find the cheapest set of roads that keeps every city connected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd, func(ctx context.Context, e *engine.Engine, p printer) error {
				st, err := e.MinimumSpanningTree(ctx)
				if err != nil {
					return err
				}
				return c.emit(p, st, func() {
					for _, edge := range st.Edges {
						p.keyValue(edge.U+" - "+edge.V, formatWeight(edge.Weight))
					}
					p.keyValue("Total", formatWeight(st.Weight))
				})
			})
		},
	}
}
