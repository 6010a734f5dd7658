package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels nodes with "kind:name" instead of just the name.
	Detailed bool
	// Highlight lists nodes drawn with a thick red outline, for example the
	// members of a dependency cycle.
	Highlight []asset.ID
}

// In detailed diagrams, sources (assets nothing depends on) get a double
// border and sinks (assets with no dependencies) a dashed one.
const (
	sourceAttr = "peripheries=2"
	sinkAttr   = `style="rounded,filled,dashed"`
)

// kindFill is the node fill colour per asset kind.
var kindFill = map[asset.Kind]string{
	asset.KindPalette: "#fde68a",
	asset.KindStamp:   "#e5e7eb",
	asset.KindBrush:   "#e5e7eb",
	asset.KindShader:  "#ddd6fe",
	asset.KindShape:   "#bfdbfe",
	asset.KindPrefab:  "#bbf7d0",
	asset.KindMap:     "#fecaca",
	asset.KindTarget:  "#fed7aa",
}

// ToDOT converts an asset graph to Graphviz DOT format. Arrows point from a
// consumer to the asset it needs, and the output is identical for identical
// graphs. The result can be rendered with [RenderSVG].
func ToDOT(g *dag.Graph, opts Options) string {
	highlight := idSet(opts.Highlight)
	var sources, sinks map[asset.ID]bool
	if opts.Detailed {
		sources = idSet(g.Sources())
		sinks = idSet(g.Sinks())
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := fmtAttrs(id, opts.Detailed, highlight[id])
		if sources[id] {
			attrs = append(attrs, sourceAttr)
		}
		if sinks[id] {
			attrs = append(attrs, sinkAttr)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From.String(), e.To.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func idSet(ids []asset.ID) map[asset.ID]bool {
	set := make(map[asset.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func fmtAttrs(id asset.ID, detailed, highlight bool) []string {
	label := id.Name
	if detailed {
		label = id.String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if fill, ok := kindFill[id.Kind]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	if highlight {
		attrs = append(attrs, "color=red", "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
