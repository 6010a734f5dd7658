package render

import (
	"maps"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/palette"
)

// ShapeRenderer renders shapes against a fixed set of stamps, brushes and a
// palette. Rendering is a pure function of these inputs and the shape.
//
// Stamps and Brushes are keyed by name and usually come straight from an
// [asset.Registry]. Builtins missing from the maps are still found by name.
// A nil Palette means [palette.Default].
type ShapeRenderer struct {
	Stamps  map[string]*asset.Stamp
	Brushes map[string]*asset.Brush
	Palette *palette.Palette
	// Variant, when set, is consulted before the palette's base colours.
	Variant string

	glyphs map[rune]*asset.Stamp
}

var defaultPalette = palette.Default()

// NewShapeRenderer returns a renderer with its glyph index prepared. The
// result is safe for concurrent use as long as its fields are not modified.
func NewShapeRenderer(stamps map[string]*asset.Stamp, brushes map[string]*asset.Brush, p *palette.Palette, variant string) *ShapeRenderer {
	r := &ShapeRenderer{Stamps: stamps, Brushes: brushes, Palette: p, Variant: variant}
	r.glyphs = r.indexGlyphs()
	return r
}

// Render resolves every cell of the shape to one pixel.
func (r *ShapeRenderer) Render(s *asset.Shape) *Image {
	glyphs := r.glyphs
	if glyphs == nil {
		glyphs = r.indexGlyphs()
	}

	img := NewImage(s.Name, s.Grid.Width(), s.Grid.Height())
	img.Tags = slices.Clone(s.Tags)

	bindings := make(map[rune]map[rune]colour.Colour, len(s.Legend))
	for glyph, e := range s.Legend {
		if e.Kind != asset.LegendStamp {
			bindings[glyph] = r.resolveBindings(e.Bindings)
		}
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Pix[y*img.Width+x] = r.resolveGlyph(s, glyphs, bindings, s.Grid.At(x, y), x, y)
		}
	}
	return img
}

func (r *ShapeRenderer) resolveGlyph(s *asset.Shape, glyphs map[rune]*asset.Stamp, bindings map[rune]map[rune]colour.Colour, glyph rune, x, y int) colour.Colour {
	if e, ok := s.Legend[glyph]; ok {
		return r.resolveEntry(e, bindings[glyph], x, y)
	}
	if st, ok := glyphs[glyph]; ok {
		return r.token(st.At(0, 0))
	}
	if st, ok := asset.BuiltinGlyph(glyph); ok {
		return r.token(st.At(0, 0))
	}
	return colour.Missing
}

func (r *ShapeRenderer) resolveEntry(e asset.LegendEntry, bound map[rune]colour.Colour, x, y int) colour.Colour {
	switch e.Kind {
	case asset.LegendStamp:
		st, ok := r.Stamps[e.Name]
		if !ok {
			st, ok = asset.BuiltinStamp(e.Name)
		}
		if !ok {
			return colour.Missing
		}
		return r.token(st.At(0, 0))

	case asset.LegendBrush, asset.LegendFill:
		b, ok := r.Brushes[e.Name]
		if !ok {
			b, ok = asset.BuiltinBrush(e.Name)
		}
		if !ok {
			return colour.Missing
		}
		if e.Kind == asset.LegendBrush {
			x, y = 0, 0
		}
		if c, ok := bound[b.Sample(x, y)]; ok {
			return c
		}
		return colour.Transparent
	}
	return colour.Missing
}

// token resolves a stamp token through the palette's edge and fill colours,
// defaulting to black and white.
func (r *ShapeRenderer) token(t asset.Token) colour.Colour {
	switch t {
	case asset.TokenEdge:
		if c, ok := r.colour("edge"); ok {
			return c
		}
		return colour.Black
	case asset.TokenFill:
		if c, ok := r.colour("fill"); ok {
			return c
		}
		return colour.White
	}
	return colour.Transparent
}

func (r *ShapeRenderer) colour(name string) (colour.Colour, bool) {
	p := r.Palette
	if p == nil {
		p = defaultPalette
	}
	return p.Variant(r.Variant, name)
}

// resolveBindings evaluates each binding as a colour expression against the
// palette. Bindings that fail to resolve are dropped, which leaves their
// letter transparent.
func (r *ShapeRenderer) resolveBindings(src map[rune]string) map[rune]colour.Colour {
	out := make(map[rune]colour.Colour, len(src))
	for letter, ref := range src {
		if c, ok := r.ResolveColour(ref); ok {
			out[letter] = c
		}
	}
	return out
}

// ResolveColour resolves a binding: #hex, $name, name or any colour
// expression over palette names.
func (r *ShapeRenderer) ResolveColour(ref string) (colour.Colour, bool) {
	expr, err := colour.ParseExpr(ref)
	if err != nil {
		return colour.Colour{}, false
	}
	c, err := colour.Eval(expr, func(name string) (colour.Colour, bool) {
		return r.colour(name)
	})
	if err != nil {
		return colour.Colour{}, false
	}
	return c, true
}

// indexGlyphs maps glyphs to user stamps. When several stamps share a
// glyph, the first by name wins.
func (r *ShapeRenderer) indexGlyphs() map[rune]*asset.Stamp {
	out := make(map[rune]*asset.Stamp)
	for _, name := range slices.Sorted(maps.Keys(r.Stamps)) {
		st := r.Stamps[name]
		if st.Glyph == 0 || st.IsBuiltin() {
			continue
		}
		if _, ok := out[st.Glyph]; !ok {
			out[st.Glyph] = st
		}
	}
	return out
}
