package dag

import (
	"testing"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/palette"
)

func testRegistry(t *testing.T) *asset.Registry {
	t.Helper()
	reg := asset.NewRegistry().WithBuiltins()

	reg.AddPalette(palette.NewBuilder("warm").Inherits("default").Define("gold", "#FFD700"))
	reg.AddShader(&asset.Shader{Name: "sunset", Palette: "warm"})
	reg.AddTarget(&asset.Target{Name: "game", Format: asset.FormatPNG, Shader: "sunset"})

	brick, err := asset.NewStamp("brick", 'B', []string{"$$", ".."})
	if err != nil {
		t.Fatal(err)
	}
	reg.AddStamp(brick)

	reg.AddShape(&asset.Shape{
		Name: "wall",
		Grid: asset.NewGrid([]string{"BG", "+-"}),
		Legend: map[rune]asset.LegendEntry{
			'G': asset.FillEntry("checker", map[rune]string{'A': "$gold"}),
		},
	})
	reg.AddShape(&asset.Shape{
		Name:   "door",
		Grid:   asset.NewGrid([]string{"D"}),
		Legend: map[rune]asset.LegendEntry{'D': asset.StampEntry("brick")},
	})
	reg.AddComposite(&asset.Composite{
		Kind:   asset.KindPrefab,
		Name:   "house",
		Grid:   asset.NewGrid([]string{"WD"}),
		Legend: map[rune]string{'W': "wall", 'D': "door"},
	})
	reg.AddComposite(&asset.Composite{
		Kind:   asset.KindMap,
		Name:   "level",
		Grid:   asset.NewGrid([]string{"H.", "W."}),
		Legend: map[rune]string{'H': "house", 'W': "wall", '.': asset.EmptyRef},
	})
	return reg
}

func hasEdge(g *Graph, from, to asset.ID) bool {
	for _, d := range g.Dependencies(from) {
		if d == to {
			return true
		}
	}
	return false
}

func TestFromRegistry(t *testing.T) {
	g := FromRegistry(testRegistry(t))

	id := asset.NewID
	edges := []struct{ from, to asset.ID }{
		{id(asset.KindPalette, "warm"), id(asset.KindPalette, "default")},
		{id(asset.KindShader, "sunset"), id(asset.KindPalette, "warm")},
		{id(asset.KindTarget, "game"), id(asset.KindShader, "sunset")},
		{id(asset.KindShape, "wall"), id(asset.KindBrush, "checker")},
		{id(asset.KindShape, "wall"), id(asset.KindStamp, "brick")},
		{id(asset.KindShape, "door"), id(asset.KindStamp, "brick")},
		{id(asset.KindPrefab, "house"), id(asset.KindShape, "wall")},
		{id(asset.KindPrefab, "house"), id(asset.KindShape, "door")},
		{id(asset.KindMap, "level"), id(asset.KindPrefab, "house")},
		{id(asset.KindMap, "level"), id(asset.KindShape, "wall")},
	}
	for _, e := range edges {
		if !hasEdge(g, e.from, e.to) {
			t.Errorf("missing edge %s -> %s", e.from, e.to)
		}
	}

	if g.HasNode(id(asset.KindBrush, "noise")) {
		t.Error("unreferenced builtin brush should not be registered")
	}
	if g.HasNode(id(asset.KindStamp, "corner")) {
		t.Error("builtin glyph stamps are not graph dependencies")
	}

	order, err := g.BuildOrder()
	if err != nil {
		t.Fatalf("BuildOrder() error: %v", err)
	}
	pos := make(map[asset.ID]int)
	for i, x := range order {
		pos[x] = i
	}
	if pos[id(asset.KindMap, "level")] < pos[id(asset.KindPrefab, "house")] {
		t.Error("map ordered before its prefab")
	}
}

func TestFromRegistryPrefabCycle(t *testing.T) {
	reg := asset.NewRegistry()
	reg.AddComposite(&asset.Composite{Kind: asset.KindPrefab, Name: "a",
		Grid: asset.NewGrid([]string{"B"}), Legend: map[rune]string{'B': "b"}})
	reg.AddComposite(&asset.Composite{Kind: asset.KindPrefab, Name: "b",
		Grid: asset.NewGrid([]string{"A"}), Legend: map[rune]string{'A': "a"}})

	if _, err := FromRegistry(reg).BuildOrder(); err == nil {
		t.Error("BuildOrder() should report the prefab cycle")
	}
}

func TestFromRegistrySharedGlyph(t *testing.T) {
	tests := []struct {
		name   string
		stamps []string
		want   string
	}{
		{"first by name", []string{"brick", "adobe"}, "adobe"},
		{"insertion order ignored", []string{"adobe", "brick"}, "adobe"},
		{"three stamps", []string{"tile", "moss", "stone"}, "moss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := asset.NewRegistry().WithBuiltins()
			for _, name := range tt.stamps {
				st, err := asset.NewStamp(name, 'S', []string{"$"})
				if err != nil {
					t.Fatal(err)
				}
				reg.AddStamp(st)
			}
			reg.AddShape(&asset.Shape{Name: "wall", Grid: asset.NewGrid([]string{"SS"})})

			for range 5 {
				deps := FromRegistry(reg).Dependencies(asset.NewID(asset.KindShape, "wall"))
				if len(deps) != 1 || deps[0] != asset.NewID(asset.KindStamp, tt.want) {
					t.Fatalf("Dependencies(shape:wall) = %v, want [stamp:%s]", deps, tt.want)
				}
			}
		})
	}
}
