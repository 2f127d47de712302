package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/engine"
	graphio "github.com/matzehuels/citygraph/pkg/io"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// ReportModel - Interactive report browser
// =============================================================================

// ReportModel is the bubbletea model for browsing the answers of a report.
// Enter toggles the full value of the selected answer.
type ReportModel struct {
	Title    string
	Answers  []engine.Answer
	Cursor   int
	Expanded bool
}

// NewReportModel creates a report browser positioned on the first answer.
func NewReportModel(title string, r engine.Report) ReportModel {
	return ReportModel{Title: title, Answers: r.Answers}
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Expanded = false
			}
		case "down", "j":
			if m.Cursor < len(m.Answers)-1 {
				m.Cursor++
				m.Expanded = false
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	}
	return m, nil
}

func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Answers))
	for i, a := range m.Answers {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := iconSuccess
		if a.Code != "" {
			status = iconError
		}
		rows[i] = []string{cursor, fmt.Sprint(i + 1), a.Question, status}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Question", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(m.Answers) {
				return lipgloss.NewStyle()
			}
			failed := m.Answers[row].Code != ""
			switch {
			case col == 3 && failed:
				return lipgloss.NewStyle().Foreground(colorRed)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case row == m.Cursor:
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if len(m.Answers) > 0 {
		b.WriteString(detailBoxStyle.Render(m.detail(m.Answers[m.Cursor])))
		b.WriteString("\n")
	}
	return b.String()
}

// detail renders the selected answer: its summary, or with Expanded its full
// value as indented JSON.
func (m ReportModel) detail(a engine.Answer) string {
	if a.Code != "" {
		return StyleWarning.Render(string(a.Code)) + " " + a.Error
	}
	if !m.Expanded {
		return StyleValue.Render(a.Summary)
	}
	data, err := json.MarshalIndent(a.Value, "", "  ")
	if err != nil {
		return a.Summary
	}
	return StyleValue.Render(a.Summary) + "\n\n" + string(data)
}

// exploreCommand opens the report in an interactive browser.
func (c *CLI) exploreCommand() *cobra.Command {
	var questionsFile string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the report interactively",
		Args:  cobra.NoArgs,
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

			report, err := runner.Report(ctx, engine.New(g), q)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewReportModel(c.graphTitle(), report),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&questionsFile, "questions", "q", "", "questions file (.toml, .yaml, .json)")
	return cmd
}
