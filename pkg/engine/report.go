package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph/centrality"
	"github.com/matzehuels/citygraph/pkg/graph/tour"
)

// Answer is the outcome of one report question. Exactly one of Value and
// Err is set.
type Answer struct {
	Question string `json:"question"`
	Kind     string `json:"kind"`
	// Value holds the typed result: PathResult, bool, Farthest, []string,
	// int, or tour.Tour depending on Kind.
	Value any `json:"value,omitempty"`
	// Summary is a one-line human-readable rendering of Value.
	Summary string `json:"summary,omitempty"`
	Err     error  `json:"-"`
	// Code and Error mirror Err for JSON consumers.
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Report is the set of answers to the canned questions, in question order.
type Report struct {
	Answers []Answer `json:"answers"`
}

// Failed returns the number of questions that could not be answered. It
// also counts answers decoded from JSON, which carry only Code.
func (r Report) Failed() int {
	n := 0
	for _, a := range r.Answers {
		if a.Err != nil || a.Code != "" {
			n++
		}
	}
	return n
}

type question struct {
	text string
	kind string
	run  func(ctx context.Context) (any, string, error)
}

// Report answers the six canned questions about the graph:
// shortest path, connectivity, farthest node, center, number of simple
// paths, and an approximate tour.
//
// Questions run one after another, in order, and independently: a failing
// question records its error in its Answer and never prevents the others
// from running.
func (e *Engine) Report(ctx context.Context, q dataset.Questions) Report {
	questions := e.questions(q)
	answers := make([]Answer, len(questions))

	for i, qu := range questions {
		a := Answer{Question: qu.text, Kind: qu.kind}
		a.Value, a.Summary, a.Err = qu.run(ctx)
		if a.Err != nil {
			a.Value, a.Summary = nil, ""
			a.Code = errors.GetCode(a.Err)
			a.Error = errors.UserMessage(a.Err)
		}
		answers[i] = a
	}
	return Report{Answers: answers}
}

func (e *Engine) questions(q dataset.Questions) []question {
	var centerOpts []centrality.Option
	if q.CenterHops {
		centerOpts = append(centerOpts, centrality.WithHops())
	}
	var tourOpts []tour.Option
	if q.TourStart != "" {
		tourOpts = append(tourOpts, tour.WithStart(q.TourStart))
	}

	return []question{
		{
			text: fmt.Sprintf("What is the shortest path from %s to %s?", q.ShortestFrom, q.ShortestTo),
			kind: KindShortestPath,
			run: func(ctx context.Context) (any, string, error) {
				r, err := e.ShortestPath(ctx, q.ShortestFrom, q.ShortestTo)
				return r, fmt.Sprintf("%s (%g)", r.Path, r.Weight), err
			},
		},
		{
			text: "Is there a path between every pair of cities?",
			kind: KindConnected,
			run: func(ctx context.Context) (any, string, error) {
				ok, err := e.IsConnected(ctx)
				return ok, yesNo(ok), err
			},
		},
		{
			text: fmt.Sprintf("Which city is farthest from %s?", q.FarthestFrom),
			kind: KindFarthest,
			run: func(ctx context.Context) (any, string, error) {
				f, err := e.FarthestNode(ctx, q.FarthestFrom)
				return f, fmt.Sprintf("%s (%g)", f.Node, f.Distance), err
			},
		},
		{
			text: "Which city is the most central?",
			kind: KindCenter,
			run: func(ctx context.Context) (any, string, error) {
				c, err := e.Center(ctx, centerOpts...)
				return c, strings.Join(c, ", "), err
			},
		},
		{
			text: fmt.Sprintf("How many distinct paths lead from %s to %s?", q.PathsFrom, q.PathsTo),
			kind: KindSimplePaths,
			run: func(ctx context.Context) (any, string, error) {
				paths, err := e.SimplePaths(ctx, q.PathsFrom, q.PathsTo)
				return len(paths), fmt.Sprint(len(paths)), err
			},
		},
		{
			text: "What is a short tour through every city?",
			kind: KindTour,
			run: func(ctx context.Context) (any, string, error) {
				t, err := e.Tour(ctx, tourOpts...)
				return t, fmt.Sprintf("%s (%g)", strings.Join(t.Walk, " -> "), t.Weight), err
			},
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
