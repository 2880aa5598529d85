// Package nodelink renders package graphs as Graphviz node-link diagrams.
//
// # Overview
//
// [Graph] is a [render.Sink]: it collects nodes and edges, writes them as
// DOT source to "<root>.gv" and lays them out with Graphviz into
// "<root>.gv.<format>". This matches the file naming of the Graphviz tools,
// where the rendered file is named after its source file.
//
//	g := nodelink.New(nodelink.Options{Root: "deps", Format: nodelink.FormatSVG})
//	render.Emit(reg, g)
//	files, err := g.Render(ctx)
//	// files: deps.gv, deps.gv.svg
//
// # Attributes
//
// [Attrs] holds the graph-level attributes. [DefaultAttrs] lays packages out
// left to right with orthogonal edges and rectangular nodes, which keeps
// long dependency lists readable.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// rendering; no Graphviz installation is needed.
//
// [render.Sink]: github.com/matzehuels/pipviz/pkg/render.Sink
package nodelink
