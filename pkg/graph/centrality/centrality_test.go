package centrality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/path"
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

func split(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 1))
	require.NoError(t, g.AddEdge("C", "D", 1))
	return g
}

func TestIsConnected(t *testing.T) {
	ok, err := IsConnected(spain(t))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsConnected(split(t))
	require.NoError(t, err)
	assert.False(t, ok)

	single := graph.New()
	require.NoError(t, single.AddNode("A"))
	ok, err = IsConnected(single)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = IsConnected(graph.New())
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyGraph), "got %v", err)
}

func TestIsConnectedMatchesReachability(t *testing.T) {
	for name, g := range map[string]*graph.Graph{"spain": spain(t), "split": split(t)} {
		t.Run(name, func(t *testing.T) {
			ok, err := IsConnected(g)
			require.NoError(t, err)
			for _, id := range g.Nodes() {
				dist, err := SingleSourceDistances(g, id)
				require.NoError(t, err)
				assert.Equal(t, ok, len(dist) == g.NodeCount(), "from %s", id)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, Components(split(t)))
	assert.Len(t, Components(spain(t)), 1)
	assert.Empty(t, Components(graph.New()))
}

func TestFarthestNode(t *testing.T) {
	g := spain(t)
	id, d, err := FarthestNode(g, "Barcelona")
	require.NoError(t, err)
	assert.Equal(t, "Sevilla", id)
	assert.Equal(t, 1220.0, d)

	id, d, err = FarthestNode(g, "Barcelona", WithHops())
	require.NoError(t, err)
	assert.Equal(t, "Sevilla", id)
	assert.Equal(t, 3.0, d)

	_, _, err = FarthestNode(g, "Lisboa")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)
}

func TestFarthestNodeTieGoesToFirstSettled(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddEdge("A", "B", 2))
	require.NoError(t, g.AddEdge("A", "C", 2))
	id, d, err := FarthestNode(g, "A")
	require.NoError(t, err)
	assert.Equal(t, "B", id)
	assert.Equal(t, 2.0, d)
}

func TestFarthestNodeIsolated(t *testing.T) {
	g := split(t)
	require.NoError(t, g.AddNode("E"))
	id, d, err := FarthestNode(g, "E")
	require.NoError(t, err)
	assert.Equal(t, "E", id)
	assert.Zero(t, d)
}

func TestEccentricity(t *testing.T) {
	g := spain(t)
	want := map[string]float64{
		"Murcia":    900,
		"Badajoz":   1020,
		"Barcelona": 1220,
		"Sevilla":   1220,
		"Zaragoza":  920,
		"Madrid":    900,
	}
	got, err := Eccentricities(g)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for id, w := range want {
		e, err := Eccentricity(g, id)
		require.NoError(t, err)
		assert.Equal(t, w, e, id)
	}

	_, err = Eccentricity(split(t), "A")
	assert.True(t, errors.Is(err, errors.ErrCodeDisconnected), "got %v", err)
	_, err = Eccentricity(g, "Lisboa")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)
	_, err = Eccentricity(graph.New(), "A")
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyGraph), "got %v", err)
}

func TestCenter(t *testing.T) {
	g := spain(t)

	center, err := Center(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Murcia", "Madrid"}, center)

	center, err = Center(g, WithHops())
	require.NoError(t, err)
	assert.Equal(t, []string{"Murcia", "Badajoz", "Madrid"}, center)

	radius, err := Radius(g)
	require.NoError(t, err)
	for _, id := range center {
		e, err := Eccentricity(g, id, WithHops())
		require.NoError(t, err)
		r, err := Radius(g, WithHops())
		require.NoError(t, err)
		assert.Equal(t, r, e)
	}
	assert.Equal(t, 900.0, radius)
}

func TestCenterMinimizesEccentricity(t *testing.T) {
	g := spain(t)
	center, err := Center(g)
	require.NoError(t, err)
	require.NotEmpty(t, center)

	ecc, err := Eccentricities(g)
	require.NoError(t, err)
	for _, c := range center {
		for id, e := range ecc {
			assert.LessOrEqual(t, ecc[c], e, "%s vs %s", c, id)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	a, b := 0.1, 0.2
	assert.True(t, approxEqual(a+b, 0.3))
	assert.True(t, approxEqual(1220, 1220+1e-7))
	assert.False(t, approxEqual(0.3, 0.31))
	assert.False(t, approxEqual(900, 920))
}

func TestCenterErrors(t *testing.T) {
	_, err := Center(split(t))
	assert.True(t, errors.Is(err, errors.ErrCodeDisconnected), "got %v", err)

	_, err = Center(graph.New())
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyGraph), "got %v", err)
}

func TestPeripheryAndDiameter(t *testing.T) {
	g := spain(t)
	p, err := Periphery(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barcelona", "Sevilla"}, p)

	d, err := Diameter(g)
	require.NoError(t, err)
	assert.Equal(t, 1220.0, d)
}

func TestSingleSourceDistancesMatchesShortestPath(t *testing.T) {
	g := spain(t)
	dist, err := SingleSourceDistances(g, "Sevilla")
	require.NoError(t, err)
	for _, id := range g.Nodes() {
		p, err := path.ShortestPath(g, "Sevilla", id)
		require.NoError(t, err)
		w, err := path.Weight(g, p, nil)
		require.NoError(t, err)
		assert.Equal(t, dist[id], w, id)
	}
}
