package cli

import (
	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/citygraph/pkg/io"
)

// exportCommand writes the loaded graph in one of the graph file formats.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph as JSON, TOML, or YAML",
		Long: `Write the graph in a format that --graph can read back. Without -o the
graph is printed to stdout as JSON; with -o the format follows the extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				f := graphio.FormatJSON
				if format != "" {
					f = graphio.Format(format)
				}
				return graphio.Write(g, cmd.OutOrStdout(), f)
			}

			if err := graphio.WriteFile(g, output); err != nil {
				return err
			}
			printer{w: cmd.OutOrStdout()}.success("Exported %d cities and %d roads", g.NodeCount(), g.EdgeCount())
			printer{w: cmd.OutOrStdout()}.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .toml, .yaml)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "stdout format: json (default), toml, yaml")
	return cmd
}
