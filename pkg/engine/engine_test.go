package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
	"github.com/matzehuels/citygraph/pkg/graph/centrality"
	"github.com/matzehuels/citygraph/pkg/graph/path"
	"github.com/matzehuels/citygraph/pkg/graph/tour"
	"github.com/matzehuels/citygraph/pkg/observability"
)

func spainEngine() *Engine {
	return New(graph.MustBuild(dataset.Spain()))
}

type recordingHooks struct {
	observability.NoopQueryHooks
	mu     sync.Mutex
	starts map[string]int
	errs   map[string]int
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{starts: map[string]int{}, errs: map[string]int{}}
}

func (h *recordingHooks) OnQueryStart(_ context.Context, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts[kind]++
}

func (h *recordingHooks) OnQueryComplete(_ context.Context, kind string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.errs[kind]++
	}
}

func TestEngineQueries(t *testing.T) {
	ctx := context.Background()
	e := spainEngine()

	sp, err := e.ShortestPath(ctx, "Murcia", "Badajoz")
	require.NoError(t, err)
	assert.Equal(t, path.Path{"Murcia", "Badajoz"}, sp.Path)
	assert.Equal(t, 500.0, sp.Weight)

	ok, err := e.IsConnected(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	far, err := e.FarthestNode(ctx, "Barcelona")
	require.NoError(t, err)
	assert.Equal(t, Farthest{Node: "Sevilla", Distance: 1220}, far)

	center, err := e.Center(ctx, centrality.WithHops())
	require.NoError(t, err)
	assert.Equal(t, []string{"Murcia", "Badajoz", "Madrid"}, center)

	paths, err := e.SimplePaths(ctx, "Sevilla", "Zaragoza")
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	tr, err := e.Tour(ctx, tour.WithStart("Madrid"))
	require.NoError(t, err)
	assert.Equal(t, "Madrid", tr.Walk[0])
	assert.Equal(t, "Madrid", tr.Walk[len(tr.Walk)-1])

	mst, err := e.MinimumSpanningTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1720.0, mst.Weight)

	dist, err := e.Distances(ctx, "Sevilla")
	require.NoError(t, err)
	assert.Equal(t, 200.0, dist["Badajoz"])

	ecc, err := e.Eccentricity(ctx, "Madrid")
	require.NoError(t, err)
	assert.Equal(t, 900.0, ecc)

	assert.Len(t, e.Components(ctx), 1)
}

func TestEngineShortestPathErrors(t *testing.T) {
	ctx := context.Background()
	e := spainEngine()

	_, err := e.ShortestPath(ctx, "Murcia", "Lisboa")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)
	_, err = e.ShortestPath(ctx, "Lisboa", "Murcia")
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound), "got %v", err)
}

func TestEngineEmptySimplePaths(t *testing.T) {
	paths, err := spainEngine().SimplePaths(context.Background(), "Madrid", "Madrid")
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}

func TestEngineSimplePathsCancelled(t *testing.T) {
	g := graph.New()
	for i := 0; i < 12; i++ {
		for j := i + 1; j < 12; j++ {
			require.NoError(t, g.AddEdge(fmt.Sprint(i), fmt.Sprint(j), 1))
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	paths, err := New(g).SimplePaths(ctx, "0", "1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, paths)
	assert.Less(t, time.Since(start), time.Second)
}

func TestEngineSimplePathsDeadline(t *testing.T) {
	g := graph.New()
	for i := 0; i < 14; i++ {
		for j := i + 1; j < 14; j++ {
			require.NoError(t, g.AddEdge(fmt.Sprint(i), fmt.Sprint(j), 1))
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(g).SimplePaths(ctx, "0", "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEngineHooks(t *testing.T) {
	hooks := newRecordingHooks()
	observability.SetQueryHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	e := spainEngine()
	_, _ = e.ShortestPath(ctx, "Murcia", "Badajoz")
	_, _ = e.Center(ctx)
	_, _ = e.Eccentricity(ctx, "Lisboa")

	assert.Equal(t, 1, hooks.starts[KindShortestPath])
	assert.Equal(t, 1, hooks.starts[KindCenter])
	assert.Equal(t, 1, hooks.errs[KindEccentricity])
	assert.Zero(t, hooks.errs[KindShortestPath])
}

func TestReportSpain(t *testing.T) {
	r := spainEngine().Report(context.Background(), dataset.DefaultQuestions())
	require.Len(t, r.Answers, 6)
	assert.Zero(t, r.Failed())

	want := []struct {
		kind    string
		summary string
	}{
		{KindShortestPath, "Murcia -> Badajoz (500)"},
		{KindConnected, "yes"},
		{KindFarthest, "Sevilla (1220)"},
		{KindCenter, "Murcia, Badajoz, Madrid"},
		{KindSimplePaths, "2"},
		{KindTour, "Murcia -> Badajoz -> Sevilla -> Badajoz -> Madrid -> Zaragoza -> Barcelona -> Murcia (2520)"},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, r.Answers[i].Kind)
		assert.Equal(t, w.summary, r.Answers[i].Summary, r.Answers[i].Question)
		assert.NoError(t, r.Answers[i].Err)
	}
}

// inFlightHooks tracks how many queries run at once and the order they start.
type inFlightHooks struct {
	observability.NoopQueryHooks
	mu      sync.Mutex
	running int
	max     int
	order   []string
}

func (h *inFlightHooks) OnQueryStart(_ context.Context, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running++
	h.max = max(h.max, h.running)
	h.order = append(h.order, kind)
}

func (h *inFlightHooks) OnQueryComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running--
}

func TestReportRunsQuestionsInOrder(t *testing.T) {
	hooks := &inFlightHooks{}
	observability.SetQueryHooks(hooks)
	defer observability.Reset()

	spainEngine().Report(context.Background(), dataset.DefaultQuestions())

	assert.Equal(t, 1, hooks.max)
	assert.Equal(t, []string{KindShortestPath, KindConnected, KindFarthest, KindCenter, KindSimplePaths, KindTour}, hooks.order)
}

func TestReportIndependentFailures(t *testing.T) {
	// Disconnected graph: connectivity answers "no", center and tour fail,
	// the rest still succeed.
	g := graph.MustBuild(graph.Spec{
		Edges: []graph.EdgeSpec{
			{From: "A", To: "B", Weight: 1},
			{From: "C", To: "D", Weight: 1},
		},
	})
	q := dataset.Questions{
		ShortestFrom: "A", ShortestTo: "B",
		FarthestFrom: "C",
		PathsFrom:    "A", PathsTo: "D",
	}
	r := New(g).Report(context.Background(), q)
	require.Len(t, r.Answers, 6)
	assert.Equal(t, 2, r.Failed())

	assert.NoError(t, r.Answers[0].Err)
	assert.Equal(t, false, r.Answers[1].Value)
	assert.Equal(t, Farthest{Node: "D", Distance: 1}, r.Answers[2].Value)
	assert.Equal(t, errors.ErrCodeDisconnected, r.Answers[3].Code)
	assert.Equal(t, 0, r.Answers[4].Value)
	assert.Equal(t, errors.ErrCodeDisconnected, r.Answers[5].Code)
	assert.Nil(t, r.Answers[5].Value)
}

func TestReportJSON(t *testing.T) {
	r := spainEngine().Report(context.Background(), dataset.DefaultQuestions())
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded struct {
		Answers []struct {
			Kind  string          `json:"kind"`
			Value json.RawMessage `json:"value"`
		} `json:"answers"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Answers, 6)
	assert.JSONEq(t, `{"path":["Murcia","Badajoz"],"weight":500}`, string(decoded.Answers[0].Value))
	assert.JSONEq(t, `2`, string(decoded.Answers[4].Value))
}
