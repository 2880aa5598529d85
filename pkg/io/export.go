package io

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/pipviz/pkg/errors"
	"github.com/matzehuels/pipviz/pkg/render"
)

// FormatJSON is the output format name handled by this package.
const FormatJSON = "json"

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// JSON collects nodes and edges and writes them as a JSON document.
type JSON struct {
	root  string
	out   graph
	index map[string]int
}

// NewJSON creates a sink that writes root+".json".
func NewJSON(root string) *JSON {
	return &JSON{
		root:  root,
		out:   graph{Nodes: []node{}, Edges: []edge{}},
		index: make(map[string]int),
	}
}

// Path returns the file Render writes.
func (j *JSON) Path() string { return j.root + ".json" }

// AddNode declares a node with the given key and label.
func (j *JSON) AddNode(key, label string) {
	if i, ok := j.index[key]; ok {
		j.out.Nodes[i].Label = label
		return
	}
	j.index[key] = len(j.out.Nodes)
	j.out.Nodes = append(j.out.Nodes, node{Key: key, Label: label})
}

// AddEdge declares a directed edge.
func (j *JSON) AddEdge(from, to string) {
	j.out.Edges = append(j.out.Edges, edge{From: from, To: to})
}

// Write encodes the collected graph to w.
func (j *JSON) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j.out); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode")
	}
	return nil
}

// Render writes the graph to Path and returns it.
func (j *JSON) Render(ctx context.Context) ([]string, error) {
	if j.root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "filename root is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := j.Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "create %s", path)
	}
	defer f.Close()

	if err := j.Write(f); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Ensure JSON implements render.Sink.
var _ render.Sink = (*JSON)(nil)
