package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/dag"
)

func testGraph() *dag.Graph {
	g := dag.New()
	g.AddEdge(asset.NewID(asset.KindShape, "wall"), asset.NewID(asset.KindStamp, "brick"))
	g.AddEdge(asset.NewID(asset.KindPrefab, "house"), asset.NewID(asset.KindShape, "wall"))
	g.AddNode(asset.NewID(asset.KindPalette, "dusk"))
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"shape:wall" [label="wall", fillcolor="#bfdbfe"];`,
		`"palette:dusk" [label="dusk", fillcolor="#fde68a"];`,
		`"prefab:house" -> "shape:wall";`,
		`"shape:wall" -> "stamp:brick";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("ToDOT() output not closed")
	}
}

func TestToDOTDetailedAndHighlight(t *testing.T) {
	wall := asset.NewID(asset.KindShape, "wall")
	dot := ToDOT(testGraph(), Options{Detailed: true, Highlight: []asset.ID{wall}})

	if !strings.Contains(dot, `"shape:wall" [label="shape:wall", fillcolor="#bfdbfe", color=red, penwidth=3];`) {
		t.Errorf("highlighted node missing in:\n%s", dot)
	}
	if strings.Count(dot, "penwidth") != 1 {
		t.Errorf("expected exactly one highlighted node:\n%s", dot)
	}
}

func TestToDOTDetailedMarksSourcesAndSinks(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		node   string
		source bool
		sink   bool
	}{
		{"source", Options{Detailed: true}, "prefab:house", true, false},
		{"sink", Options{Detailed: true}, "stamp:brick", false, true},
		{"isolated", Options{Detailed: true}, "palette:dusk", true, true},
		{"inner", Options{Detailed: true}, "shape:wall", false, false},
		{"plain", Options{}, "prefab:house", false, false},
	}

	dots := map[bool]string{
		true:  ToDOT(testGraph(), Options{Detailed: true}),
		false: ToDOT(testGraph(), Options{}),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := nodeLine(dots[tt.opts.Detailed], tt.node)
			if line == "" {
				t.Fatalf("node %s missing", tt.node)
			}
			if got := strings.Contains(line, sourceAttr); got != tt.source {
				t.Errorf("source mark on %s = %v, want %v: %s", tt.node, got, tt.source, line)
			}
			if got := strings.Contains(line, sinkAttr); got != tt.sink {
				t.Errorf("sink mark on %s = %v, want %v: %s", tt.node, got, tt.sink, line)
			}
		})
	}
}

func nodeLine(dot, id string) string {
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"`+id+`" [`) {
			return line
		}
	}
	return ""
}

func TestToDOTDeterministic(t *testing.T) {
	if ToDOT(testGraph(), Options{}) != ToDOT(testGraph(), Options{}) {
		t.Error("ToDOT() output differs between identical graphs")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed an SVG without viewBox")
	}
}
