package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/citygraph/pkg/engine"
	"github.com/matzehuels/citygraph/pkg/errors"
)

func testReport() engine.Report {
	return engine.Report{Answers: []engine.Answer{
		{Question: "Shortest path", Kind: engine.KindShortestPath, Summary: "Murcia -> Badajoz (500)", Value: map[string]any{"weight": 500}},
		{Question: "Connected?", Kind: engine.KindConnected, Summary: "yes", Value: true},
		{Question: "Farthest city", Kind: engine.KindFarthest, Code: errors.ErrCodeNodeNotFound, Error: `node "Lisboa" not found`},
	}}
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestReportModelNavigation(t *testing.T) {
	var m tea.Model = NewReportModel("Ciudades", testReport())

	m = press(m, "up")
	if got := m.(ReportModel).Cursor; got != 0 {
		t.Errorf("cursor moved above first answer: %d", got)
	}

	m = press(press(press(m, "down"), "j"), "down")
	if got := m.(ReportModel).Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", got)
	}

	m = press(m, "k")
	if got := m.(ReportModel).Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestReportModelView(t *testing.T) {
	var m tea.Model = NewReportModel("Ciudades", testReport())

	view := m.View()
	for _, want := range []string{"Ciudades", "Shortest path", "Farthest city", "Murcia -> Badajoz (500)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, `"weight"`) {
		t.Error("value should be hidden until expanded")
	}

	m = press(m, "enter")
	if !m.(ReportModel).Expanded {
		t.Fatal("enter should expand the answer")
	}
	if !strings.Contains(m.View(), `"weight": 500`) {
		t.Errorf("expanded view should show the value:\n%s", m.View())
	}

	m = press(press(m, "down"), "down")
	if m.(ReportModel).Expanded {
		t.Error("moving should collapse the answer")
	}
	if !strings.Contains(m.View(), "NODE_NOT_FOUND") {
		t.Error("failed answer should show its code")
	}
}

func TestReportModelQuit(t *testing.T) {
	m := NewReportModel("Ciudades", testReport())
	for _, key := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s should return tea.Quit", key)
		}
	}
}
