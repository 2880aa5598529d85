package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pipviz/pkg/errors"
	"github.com/matzehuels/pipviz/pkg/render"
)

// Output formats Graphviz can render to.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatJPG = "jpg"
)

var formats = map[string]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
}

// Formats lists the supported image formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ValidFormat reports whether f is a supported image format.
func ValidFormat(f string) bool {
	_, ok := formats[f]
	return ok
}

// Attrs are the Graphviz attributes applied to the whole graph.
// Empty fields are left out of the DOT source.
type Attrs struct {
	RankDir   string // Layout direction, e.g. "LR"
	Splines   string // Edge routing, e.g. "ortho"
	MCLimit   string // Crossing minimization effort multiplier
	RankSep   string // Separation between ranks, in inches
	NodeShape string // Shape of every node, e.g. "rectangle"
}

// DefaultAttrs returns the attributes used when none are configured.
func DefaultAttrs() Attrs {
	return Attrs{
		RankDir:   "LR",
		Splines:   "ortho",
		MCLimit:   "4.0",
		RankSep:   "1.0",
		NodeShape: "rectangle",
	}
}

// Options configures a Graph.
type Options struct {
	// Root is the filename root. The DOT source is written to Root+".gv" and
	// the image to Root+".gv."+Format.
	Root string
	// Format is the image format (default: svg).
	Format string
	// Attrs are the graph attributes (default: DefaultAttrs).
	Attrs *Attrs
}

type node struct {
	key   string
	label string
}

type edge struct {
	from string
	to   string
}

// Graph collects nodes and edges and renders them with Graphviz.
// Nodes and edges keep the order in which they were added; a repeated node
// key replaces the earlier label.
type Graph struct {
	opts  Options
	attrs Attrs
	nodes []node
	index map[string]int
	edges []edge
}

// New creates an empty Graph.
func New(opts Options) *Graph {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	attrs := DefaultAttrs()
	if opts.Attrs != nil {
		attrs = *opts.Attrs
	}
	return &Graph{opts: opts, attrs: attrs, index: make(map[string]int)}
}

// AddNode declares a node with the given key and label.
func (g *Graph) AddNode(key, label string) {
	if i, ok := g.index[key]; ok {
		g.nodes[i].label = label
		return
	}
	g.index[key] = len(g.nodes)
	g.nodes = append(g.nodes, node{key: key, label: label})
}

// AddEdge declares a directed edge.
func (g *Graph) AddEdge(from, to string) {
	g.edges = append(g.edges, edge{from: from, to: to})
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Files returns the paths Render writes: the DOT source and the image.
func (g *Graph) Files() (source, image string) {
	source = g.opts.Root + ".gv"
	return source, source + "." + g.opts.Format
}

// DOT returns the graph as Graphviz DOT source.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(filepath.Base(g.opts.Root)))
	if attrs := g.graphAttrs(); len(attrs) > 0 {
		fmt.Fprintf(&buf, "\tgraph [%s]\n", strings.Join(attrs, " "))
	}
	if g.attrs.NodeShape != "" {
		fmt.Fprintf(&buf, "\tnode [shape=%s]\n", quote(g.attrs.NodeShape))
	}

	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "\t%s [label=%s]\n", quote(n.key), quote(n.label))
	}
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "\t%s -> %s\n", quote(e.from), quote(e.to))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func (g *Graph) graphAttrs() []string {
	var attrs []string
	for _, kv := range [][2]string{
		{"mclimit", g.attrs.MCLimit},
		{"rankdir", g.attrs.RankDir},
		{"ranksep", g.attrs.RankSep},
		{"splines", g.attrs.Splines},
	} {
		if kv[1] != "" {
			attrs = append(attrs, kv[0]+"="+quote(kv[1]))
		}
	}
	return attrs
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// Render writes the DOT source and the rendered image, returning both paths.
// If the source was written but rendering failed, the source path is still
// returned along with the error.
func (g *Graph) Render(ctx context.Context) ([]string, error) {
	if g.opts.Root == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "filename root is empty")
	}
	if !ValidFormat(g.opts.Format) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (supported: %s)",
			g.opts.Format, strings.Join(Formats(), ", "))
	}

	source, image := g.Files()
	dot := g.DOT()
	if err := writeFile(source, []byte(dot)); err != nil {
		return nil, err
	}

	data, err := RenderBytes(ctx, dot, g.opts.Format)
	if err != nil {
		return []string{source}, err
	}
	if err := writeFile(image, data); err != nil {
		return []string{source}, err
	}
	return []string{source, image}, nil
}

// RenderBytes lays out DOT source with Graphviz and returns the image bytes.
func RenderBytes(ctx context.Context, dot, format string) ([]byte, error) {
	f, ok := formats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, f, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}

// Ensure Graph implements render.Sink.
var _ render.Sink = (*Graph)(nil)
