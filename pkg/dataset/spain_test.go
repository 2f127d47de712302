package dataset

import (
	"testing"

	"github.com/matzehuels/citygraph/pkg/graph"
)

func TestSpainBuilds(t *testing.T) {
	g, err := graph.Build(Spain())
	if err != nil {
		t.Fatalf("Build(Spain()) error: %v", err)
	}
	if g.NodeCount() != 6 {
		t.Errorf("NodeCount() = %d, want 6", g.NodeCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
	if g.TotalWeight() != 2320 {
		t.Errorf("TotalWeight() = %v, want 2320", g.TotalWeight())
	}
}

func TestDefaultQuestionsReferenceNodes(t *testing.T) {
	g := graph.MustBuild(Spain())
	q := DefaultQuestions()
	for _, id := range []string{q.ShortestFrom, q.ShortestTo, q.FarthestFrom, q.PathsFrom, q.PathsTo} {
		if !g.HasNode(id) {
			t.Errorf("question references unknown city %q", id)
		}
	}
}
