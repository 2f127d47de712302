package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/citygraph/pkg/dataset"
	"github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/graph"
)

// Format identifies a graph file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension.
// Returns an INVALID_FORMAT error for unknown extensions.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph file extension %q (want .json, .toml, .yaml)", filepath.Ext(path))
	}
}

// Read decodes a graph in the given format from r.
//
// All formats share the same shape. In JSON:
//
//	{
//	  "name": "spain",
//	  "nodes": ["Murcia", "Badajoz"],
//	  "edges": [{"from": "Murcia", "to": "Badajoz", "weight": 500}]
//	}
//
// Nodes listed under "nodes" are added first, in order, then edges.
// Endpoints of edges need not be listed as nodes. Read returns an
// INVALID_FORMAT error if decoding fails and the store's INVALID_EDGE or
// INVALID_INPUT errors, wrapped with the offending item, if the content is
// not a valid graph. Read does not close r.
func Read(r io.Reader, format Format) (*graph.Graph, error) {
	var spec graph.Spec
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&spec)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&spec)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&spec)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return graph.Build(spec)
}

// ReadFile reads the graph file at path, choosing the decoder from its
// extension.
//
// Returns a FILE_NOT_FOUND error if the file does not exist, plus any error
// from [Read]. Errors carry the path for context.
func ReadFile(path string) (*graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadQuestionsFile reads a report question set from path, choosing the
// decoder from its extension. Fields absent from the file keep the values of
// [dataset.DefaultQuestions].
func ReadQuestionsFile(path string) (dataset.Questions, error) {
	q := dataset.DefaultQuestions()
	format, err := FormatFromPath(path)
	if err != nil {
		return q, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return q, errors.Wrap(errors.ErrCodeFileNotFound, err, "questions file %s not found", path)
		}
		return q, fmt.Errorf("read %s: %w", path, err)
	}

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &q)
	case FormatTOML:
		err = toml.Unmarshal(data, &q)
	case FormatYAML:
		err = yaml.Unmarshal(data, &q)
	}
	if err != nil {
		return q, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return q, nil
}
