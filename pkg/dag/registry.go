package dag

import (
	"github.com/matzehuels/pixelforge/pkg/asset"
)

// FromRegistry builds the dependency graph of a registry. Every user asset
// is registered; builtins join the graph only when something references
// them. Edges recorded:
//
//   - palette → parent palette
//   - shader → palette, shader → parent shader
//   - shape → stamp or brush named by a legend entry, and shape → stamp
//     whose glyph appears in the grid without a legend entry
//   - prefab/map → referenced shape (or prefab when no shape has the name)
//   - target → shader
//
// References to assets absent from the registry are not recorded; they are
// reported by validation or at render time.
func FromRegistry(reg *asset.Registry) *Graph {
	g := New()
	for _, id := range reg.IDs() {
		if !reg.IsBuiltin(id) {
			g.AddNode(id)
		}
	}

	link := func(from asset.ID, to asset.ID) {
		if reg.Has(to) {
			g.AddEdge(from, to)
		}
	}

	for name, b := range reg.Palettes {
		if b.Parent != "" {
			link(asset.NewID(asset.KindPalette, name), asset.NewID(asset.KindPalette, b.Parent))
		}
	}

	for name, s := range reg.Shaders {
		if reg.IsBuiltin(asset.NewID(asset.KindShader, name)) {
			continue
		}
		id := asset.NewID(asset.KindShader, name)
		if s.Palette != "" {
			link(id, asset.NewID(asset.KindPalette, s.Palette))
		}
		if s.Parent != "" {
			link(id, asset.NewID(asset.KindShader, s.Parent))
		}
	}

	// Stamps sharing a glyph resolve to the first by name, as in rendering.
	byGlyph := make(map[rune]string)
	for _, name := range reg.Names(asset.KindStamp) {
		s := reg.Stamps[name]
		if s.Glyph == 0 || reg.IsBuiltin(asset.NewID(asset.KindStamp, name)) {
			continue
		}
		if _, ok := byGlyph[s.Glyph]; !ok {
			byGlyph[s.Glyph] = name
		}
	}

	for name, s := range reg.Shapes {
		id := asset.NewID(asset.KindShape, name)
		for _, e := range s.Legend {
			switch e.Kind {
			case asset.LegendStamp:
				link(id, asset.NewID(asset.KindStamp, e.Name))
			default:
				link(id, asset.NewID(asset.KindBrush, e.Name))
			}
		}
		for _, r := range s.Grid.Glyphs() {
			if _, ok := s.Legend[r]; ok {
				continue
			}
			if stamp, ok := byGlyph[r]; ok {
				link(id, asset.NewID(asset.KindStamp, stamp))
			}
		}
	}

	for _, composites := range []map[string]*asset.Composite{reg.Prefabs, reg.Maps} {
		for _, c := range composites {
			for _, ref := range c.References() {
				if to, ok := reg.ResolvePiece(ref); ok {
					g.AddEdge(c.ID(), to)
				}
			}
		}
	}

	for name, t := range reg.Targets {
		if t.Shader != "" && !reg.IsBuiltin(asset.NewID(asset.KindTarget, name)) {
			link(asset.NewID(asset.KindTarget, name), asset.NewID(asset.KindShader, t.Shader))
		}
	}
	return g
}
