// Package io exports a dependency graph as JSON.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"key": "flask", "label": "Flask 3.0.3"},
//	    {"key": "werkzeug", "label": "Werkzeug 3.0.3"}
//	  ],
//	  "edges": [
//	    {"from": "flask", "to": "werkzeug"}
//	  ]
//	}
//
// Nodes appear in the order they were added and a repeated key replaces the
// earlier label. Edges appear in the order they were added.
//
// # Export
//
// [JSON] implements render.Sink. Use [NewJSON] to write to <root>.json, or
// [JSON.Write] to encode to any io.Writer:
//
//	sink := io.NewJSON("deps")
//	files, err := render.Graph(ctx, reg, sink)
package io
