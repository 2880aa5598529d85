// Package pkg provides the libraries behind pipviz.
//
// # Overview
//
// Pipviz turns the packages installed in a pip environment into a
// dependency graph. The pkg directory is organized by stage:
//
//  1. [pip] - runs pip list and pip show
//  2. [registry] - deduplicates packages by normalized key
//  3. [render] - emits the registry to sinks ([render/nodelink], [io])
//  4. [cache], [config], [errors], [observability] - shared infrastructure
//
// # Architecture
//
//	pip list / pip show
//	         ↓
//	    [pip] package (listings and details, optionally cached)
//	         ↓
//	    [registry] package (one Package per key, shared dependency objects)
//	         ↓
//	    [render] package (nodes and edges)
//	         ↓
//	    DOT + SVG/PNG/JPG, JSON
//
// # Quick Start
//
//	client := pip.NewClient("pip", pip.Options{})
//	reg, err := registry.NewBuilder(client, client, registry.Options{}).Build(ctx)
//	if err != nil {
//	    return err
//	}
//	files, err := render.Graph(ctx, reg, nodelink.New(nodelink.Options{Root: "deps"}))
package pkg
