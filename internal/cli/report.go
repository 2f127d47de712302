package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/engine"
	graphio "github.com/matzehuels/citygraph/pkg/io"
)

// reportCommand creates the report command: the six canned questions plus a
// drawing of the network.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		questionsFile string
		noImage       bool
		opts          renderOpts
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Answer the standard questions about the network and draw it",
		Long: `Answer six questions about the network:

  1. the shortest route between two cities
  2. whether every pair of cities is connected
  3. the city farthest from a given city
  4. the most central cities
  5. how many distinct routes join two cities
  6. a short round trip through every city

Each question is answered independently; one failing does not stop the
others. The questions default to the built-in Spanish cities and can be
changed with --questions FILE (.toml, .yaml, or .json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

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

			report, hit, err := runner.ReportWithCacheInfo(ctx, engine.New(g), q)
			if err != nil {
				return err
			}
			logger.Debug("report ready", "cached", hit, "failed", report.Failed())

			drawImage := !noImage && !c.jsonOutput
			// With -o - the image owns stdout and the text moves to stderr.
			p := printer{w: cmd.OutOrStdout()}
			if drawImage && opts.output == "-" {
				p = printer{w: cmd.ErrOrStderr()}
			}
			if err := c.emit(p, report, func() { printReport(p, c.graphTitle(), report, g.NodeCount(), g.EdgeCount(), hit) }); err != nil {
				return err
			}

			if !drawImage {
				return nil
			}
			if _, err := c.renderTo(ctx, cmd, g, opts); err != nil {
				p.warning("Image not written: %v", err)
				return nil
			}
			if opts.output != "-" {
				p.file(opts.output)
				p.nextStep("Browse the answers", appName+" explore")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&questionsFile, "questions", "q", "", "questions file (.toml, .yaml, .json)")
	cmd.Flags().BoolVar(&noImage, "no-image", false, "skip drawing the network")
	opts.addFlags(cmd)
	return cmd
}

// printReport prints each question with its answer or error.
func printReport(p printer, title string, r engine.Report, nodes, edges int, cached bool) {
	p.title(title)
	p.stats(nodes, edges, cached)
	p.line("")
	for i, a := range r.Answers {
		p.line(StyleDim.Render(fmt.Sprintf("%d.", i+1)) + " " + a.Question)
		if a.Code != "" {
			p.failure("%s: %s", a.Code, a.Error)
		} else {
			p.success("%s", a.Summary)
		}
	}
	p.line("")
	if n := r.Failed(); n > 0 {
		p.warning("%d of %d questions could not be answered", n, len(r.Answers))
	}
}
