package render

import (
	"context"
	"fmt"

	"github.com/matzehuels/pipviz/pkg/registry"
)

// Sink receives graph elements and produces output files from them.
type Sink interface {
	// AddNode declares a node. Keys are unique within one emission.
	AddNode(key, label string)
	// AddEdge declares a directed edge between two declared nodes.
	AddEdge(from, to string)
	// Render writes the output and returns the paths it wrote.
	Render(ctx context.Context) ([]string, error)
}

// Graph emits every package of reg as a node and every dependency as an
// edge, then renders the sink once.
func Graph(ctx context.Context, reg *registry.Registry, sink Sink) ([]string, error) {
	Emit(reg, sink)
	files, err := sink.Render(ctx)
	if err != nil {
		return files, fmt.Errorf("render: %w", err)
	}
	return files, nil
}

// Emit feeds reg to sink without rendering. Nodes come in the registry's
// first-seen order, followed by edges.
func Emit(reg *registry.Registry, sink Sink) {
	pkgs := reg.Packages()
	for _, p := range pkgs {
		sink.AddNode(p.Key, p.Label())
	}
	for _, p := range pkgs {
		for _, dep := range p.DependencyKeys() {
			sink.AddEdge(p.Key, dep)
		}
	}
}

// Multi returns a Sink that forwards every call to each of sinks in order.
// Render stops at the first failing sink.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) AddNode(key, label string) {
	for _, s := range m {
		s.AddNode(key, label)
	}
}

func (m multi) AddEdge(from, to string) {
	for _, s := range m {
		s.AddEdge(from, to)
	}
}

func (m multi) Render(ctx context.Context) ([]string, error) {
	var files []string
	for _, s := range m {
		written, err := s.Render(ctx)
		files = append(files, written...)
		if err != nil {
			return files, err
		}
	}
	return files, nil
}
