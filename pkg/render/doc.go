// Package render emits a package registry as a node-link graph.
//
// # Overview
//
// [Graph] walks a [registry.Registry] and feeds a [Sink]: one node per
// package, keyed by its normalized key and labeled "<name> <version>", then
// one edge per package → dependency pair. The sink's Render step runs once
// after everything has been emitted. The registry is never modified.
//
//	sink := nodelink.New(nodelink.Options{Root: "deps"})
//	files, err := render.Graph(ctx, reg, sink)
//
// # Sinks
//
// Sinks decide what to produce. The [nodelink] subpackage writes a Graphviz
// DOT file and the image Graphviz lays out from it; the [io] package writes a
// JSON description. [Multi] fans one emission out to several sinks.
//
// [nodelink]: github.com/matzehuels/pipviz/pkg/render/nodelink
// [io]: github.com/matzehuels/pipviz/pkg/io
package render
