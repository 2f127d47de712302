package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/internal/server"
	"github.com/matzehuels/citygraph/pkg/dataset"
	graphio "github.com/matzehuels/citygraph/pkg/io"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, questionsFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the queries over HTTP",
		Long: `Serve every query as a JSON endpoint under /v1, plus /healthz and
Prometheus metrics on /metrics. Reports and images are cached in the same
backend as the CLI (Redis with --redis-url, otherwise the cache directory).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			q := dataset.DefaultQuestions()
			if questionsFile != "" {
				var err error
				if q, err = graphio.ReadQuestionsFile(questionsFile); err != nil {
					return err
				}
			}

			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:      addr,
				Graph:     g,
				Runner:    runner,
				Questions: q,
				Logger:    loggerFromContext(ctx),
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVarP(&questionsFile, "questions", "q", "", "questions file for /v1/report (.toml, .yaml, .json)")
	return cmd
}
