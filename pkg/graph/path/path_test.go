package path

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

func spain(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(graph.Spec{
		Nodes: []string{"Murcia", "Badajoz", "Barcelona", "Sevilla", "Zaragoza", "Madrid"},
		Edges: []graph.EdgeSpec{
			{From: "Murcia", To: "Badajoz", Weight: 500},
			{From: "Murcia", To: "Barcelona", Weight: 600},
			{From: "Barcelona", To: "Zaragoza", Weight: 300},
			{From: "Zaragoza", To: "Madrid", Weight: 320},
			{From: "Madrid", To: "Badajoz", Weight: 400},
			{From: "Sevilla", To: "Badajoz", Weight: 200},
		},
	})
	require.NoError(t, err)
	return g
}

// chain builds A-B-C-D with unit weights plus a heavy A-D shortcut.
func chain(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("B", "C", 1))
	require.NoError(t, g.AddEdge("C", "D", 1))
	require.NoError(t, g.AddEdge("A", "D", 10))
	return g
}

func TestShortestPathChain(t *testing.T) {
	g := chain(t)

	p, err := ShortestPath(g, "A", "D")
	require.NoError(t, err)
	assert.Equal(t, Path{"A", "B", "C", "D"}, p)

	w, err := Weight(g, p, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, w)
}

func TestShortestPathHops(t *testing.T) {
	p, err := ShortestPath(chain(t), "A", "D", WithHops())
	require.NoError(t, err)
	assert.Equal(t, Path{"A", "D"}, p)
}

func TestShortestPathSpain(t *testing.T) {
	g := spain(t)
	tests := []struct {
		from, to string
		want     Path
		weight   float64
	}{
		{"Murcia", "Badajoz", Path{"Murcia", "Badajoz"}, 500},
		{"Sevilla", "Zaragoza", Path{"Sevilla", "Badajoz", "Madrid", "Zaragoza"}, 920},
		{"Barcelona", "Sevilla", Path{"Barcelona", "Zaragoza", "Madrid", "Badajoz", "Sevilla"}, 1220},
		{"Madrid", "Madrid", Path{"Madrid"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.to, func(t *testing.T) {
			p, err := ShortestPath(g, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)

			w, err := Weight(g, p, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.weight, w)

			tree, err := SingleSource(g, tt.from)
			require.NoError(t, err)
			assert.Equal(t, tree.Dist[tt.to], w)
		})
	}
}

func TestShortestPathErrors(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("C", "D", 1))

	_, err := ShortestPath(g, "A", "C")
	assert.True(t, errors.Is(err, errors.ErrCodeNoPath), "got %v", err)

	_, err = ShortestPath(g, "A", "Z")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)

	_, err = ShortestPath(g, "Z", "A")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)
}

func TestSingleSource(t *testing.T) {
	g := spain(t)
	tree, err := SingleSource(g, "Barcelona")
	require.NoError(t, err)

	assert.Equal(t, DistanceMap{
		"Barcelona": 0,
		"Zaragoza":  300,
		"Murcia":    600,
		"Madrid":    620,
		"Badajoz":   1020,
		"Sevilla":   1220,
	}, tree.Dist)
	assert.Equal(t, []string{"Barcelona", "Zaragoza", "Murcia", "Madrid", "Badajoz", "Sevilla"}, tree.Order)

	for i := 1; i < len(tree.Order); i++ {
		assert.LessOrEqual(t, tree.Dist[tree.Order[i-1]], tree.Dist[tree.Order[i]])
	}
}

func TestSingleSourceTieBreak(t *testing.T) {
	// B and C are both at distance 1; C was inserted first.
	g := graph.New()
	require.NoError(t, g.AddNode("A"))
	require.NoError(t, g.AddNode("C"))
	require.NoError(t, g.AddNode("B"))
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("A", "C", 1))

	tree, err := SingleSource(g, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, tree.Order)
}

func TestSingleSourceUnreachableAbsent(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddNode("C"))

	tree, err := SingleSource(g, "A")
	require.NoError(t, err)
	_, ok := tree.Dist["C"]
	assert.False(t, ok)
	assert.Len(t, tree.Order, 2)
}

func TestSingleSourceBadWeightFunc(t *testing.T) {
	neg := func(_, _ string, w float64) float64 { return -w }
	_, err := SingleSource(chain(t), "A", WithWeight(neg))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidEdge), "got %v", err)
}

func TestWeightNotAdjacent(t *testing.T) {
	_, err := Weight(chain(t), Path{"A", "C"}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeNoPath), "got %v", err)
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "A -> B -> C", Path{"A", "B", "C"}.String())
	assert.Equal(t, 2, Path{"A", "B", "C"}.Hops())
	assert.Equal(t, 0, Path{}.Hops())
}

func ExampleShortestPath() {
	g := graph.MustBuild(graph.Spec{
		Edges: []graph.EdgeSpec{
			{From: "A", To: "B", Weight: 1},
			{From: "B", To: "C", Weight: 1},
			{From: "C", To: "D", Weight: 1},
			{From: "A", To: "D", Weight: 10},
		},
	})
	p, _ := ShortestPath(g, "A", "D")
	w, _ := Weight(g, p, nil)
	fmt.Println(p, w)
	// Output: A -> B -> C -> D 3
}
