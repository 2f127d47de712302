package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

const jsonGraph = `{
  "name": "spain",
  "nodes": ["Murcia", "Badajoz", "Sevilla"],
  "edges": [
    {"from": "Murcia", "to": "Badajoz", "weight": 500},
    {"from": "Sevilla", "to": "Badajoz", "weight": 200}
  ]
}`

const tomlGraph = `
name = "spain"
nodes = ["Murcia", "Badajoz", "Sevilla"]

[[edges]]
from = "Murcia"
to = "Badajoz"
weight = 500.0

[[edges]]
from = "Sevilla"
to = "Badajoz"
weight = 200.0
`

const yamlGraph = `
name: spain
nodes: [Murcia, Badajoz, Sevilla]
edges:
  - {from: Murcia, to: Badajoz, weight: 500}
  - {from: Sevilla, to: Badajoz, weight: 200}
`

func TestRead(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, jsonGraph},
		{FormatTOML, tomlGraph},
		{FormatYAML, yamlGraph},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if got := g.Nodes(); !slices.Equal(got, []string{"Murcia", "Badajoz", "Sevilla"}) {
				t.Errorf("Nodes() = %v", got)
			}
			if w, ok := g.Weight("Badajoz", "Sevilla"); !ok || w != 200 {
				t.Errorf("Weight(Badajoz, Sevilla) = %v, %v", w, ok)
			}
		})
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"malformed yaml", FormatYAML, "nodes: [a\nedges: {", errors.ErrCodeInvalidFormat},
		{"unknown format", Format("xml"), "<graph/>", errors.ErrCodeInvalidFormat},
		{"negative weight", FormatJSON, `{"edges": [{"from": "a", "to": "b", "weight": -1}]}`, errors.ErrCodeInvalidEdge},
		{"self-loop", FormatJSON, `{"edges": [{"from": "a", "to": "a", "weight": 1}]}`, errors.ErrCodeInvalidEdge},
		{"empty node", FormatJSON, `{"nodes": [""]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	g, err := Read(strings.NewReader(""), FormatJSON)
	if err != nil {
		t.Fatalf("Read(empty) error: %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"g.json", FormatJSON},
		{"dir/G.TOML", FormatTOML},
		{"cities.yaml", FormatYAML},
		{"cities.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatFromPath("graph.csv"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("FormatFromPath(csv) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRoundTrip(t *testing.T) {
	orig := graph.MustBuild(graph.Spec{
		Name:  "meseta",
		Nodes: []string{"Murcia", "Badajoz", "Madrid"},
		Edges: []graph.EdgeSpec{
			{From: "Madrid", To: "Badajoz", Weight: 400},
			{From: "Murcia", To: "Badajoz", Weight: 500.5},
		},
	})
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(orig, &buf, format); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			back, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error: %v\n%s", err, buf.String())
			}
			if !slices.Equal(back.Nodes(), orig.Nodes()) || !slices.Equal(back.Edges(), orig.Edges()) {
				t.Errorf("round trip mismatch:\n got %v %v\nwant %v %v", back.Nodes(), back.Edges(), orig.Nodes(), orig.Edges())
			}
			if back.Name() != "meseta" {
				t.Errorf("round trip Name() = %q, want meseta", back.Name())
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(src, []byte(yamlGraph), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadFile(src)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	dst := filepath.Join(dir, "out.json")
	if err := WriteFile(g, dst); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	back, err := ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile(out) error: %v", err)
	}
	if back.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", back.EdgeCount())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadQuestionsFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"q.toml": "shortest_from = \"Sevilla\"\nshortest_to = \"Madrid\"\n",
		"q.yaml": "shortest_from: Sevilla\nshortest_to: Madrid\n",
		"q.json": `{"shortest_from": "Sevilla", "shortest_to": "Madrid"}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			q, err := ReadQuestionsFile(p)
			if err != nil {
				t.Fatalf("ReadQuestionsFile() error: %v", err)
			}
			if q.ShortestFrom != "Sevilla" || q.ShortestTo != "Madrid" {
				t.Errorf("shortest = %s -> %s, want Sevilla -> Madrid", q.ShortestFrom, q.ShortestTo)
			}
			// Unset fields keep their defaults.
			if q.PathsFrom != "Sevilla" || q.FarthestFrom != "Barcelona" {
				t.Errorf("defaults not kept: %+v", q)
			}
		})
	}
}

func TestReadQuestionsFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadQuestionsFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQuestionsFile(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad file error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadExampleFiles(t *testing.T) {
	spain, err := ReadFile(filepath.Join("..", "..", "examples", "graphs", "spain.yaml"))
	if err != nil {
		t.Fatalf("spain.yaml: %v", err)
	}
	if spain.NodeCount() != 6 || spain.EdgeCount() != 6 {
		t.Errorf("spain.yaml: %d nodes, %d edges", spain.NodeCount(), spain.EdgeCount())
	}

	andalucia, err := ReadFile(filepath.Join("..", "..", "examples", "graphs", "andalucia.toml"))
	if err != nil {
		t.Fatalf("andalucia.toml: %v", err)
	}
	q, err := ReadQuestionsFile(filepath.Join("..", "..", "examples", "questions", "andalucia.toml"))
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	for _, id := range []string{q.ShortestFrom, q.ShortestTo, q.FarthestFrom, q.PathsFrom, q.PathsTo, q.TourStart} {
		if !andalucia.HasNode(id) {
			t.Errorf("question names %q, which is not in andalucia.toml", id)
		}
	}
}
