package asset

import "github.com/matzehuels/pixelforge/pkg/palette"

// BuiltinStamps returns fresh copies of the builtin stamps. Each is a single
// pixel placed by its glyph.
func BuiltinStamps() []*Stamp {
	return []*Stamp{
		singleStamp("corner", '+', TokenEdge),
		singleStamp("edge-h", '-', TokenEdge),
		singleStamp("edge-v", '|', TokenEdge),
		singleStamp("solid", '#', TokenEdge),
		singleStamp("fill", '.', TokenFill),
		singleStamp("transparent", 'x', TokenTransparent),
		singleStamp("space", ' ', TokenFill),
	}
}

var builtinGlyphs = func() map[rune]*Stamp {
	m := make(map[rune]*Stamp)
	for _, s := range BuiltinStamps() {
		m[s.Glyph] = s
	}
	return m
}()

// BuiltinGlyph returns the builtin stamp placed by glyph r.
func BuiltinGlyph(r rune) (*Stamp, bool) {
	s, ok := builtinGlyphs[r]
	return s, ok
}

// BuiltinStamp returns the builtin stamp with the given name.
func BuiltinStamp(name string) (*Stamp, bool) {
	for _, s := range builtinGlyphs {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// BuiltinBrush returns the builtin brush with the given name.
func BuiltinBrush(name string) (*Brush, bool) {
	for _, b := range BuiltinBrushes() {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// BuiltinBrushes returns the builtin brushes.
func BuiltinBrushes() []*Brush {
	return []*Brush{
		mustBrush("solid", "A"),
		mustBrush("checker", "AB", "BA"),
		mustBrush("diagonal-r", "AB", "BA"),
		mustBrush("diagonal-l", "BA", "AB"),
		mustBrush("h-line", "A", "B"),
		mustBrush("v-line", "AB"),
		mustBrush("noise", "ABBA", "BAAB", "AABB", "BBAA"),
	}
}

// DefaultPalette returns a builder equivalent to [palette.Default].
func DefaultPalette() *palette.Builder {
	return palette.NewBuilder(palette.DefaultName).
		Define("black", "#000000").
		Define("white", "#FFFFFF").
		Define("edge", "$black").
		Define("fill", "$white")
}

// BuiltinShaders returns the builtin shaders.
func BuiltinShaders() []*Shader {
	return []*Shader{{Name: DefaultShaderName, Palette: palette.DefaultName}}
}

// BuiltinTargets returns the builtin targets: web, sheet and p8.
func BuiltinTargets() []*Target {
	return []*Target{
		{Name: "web", Format: FormatPNG, PaletteMode: PaletteRGBA},
		{Name: "sheet", Format: FormatPNG, Sheet: Sheet{Kind: SheetAuto}, PaletteMode: PaletteRGBA},
		{
			Name:        "p8",
			Format:      FormatP8,
			Scale:       1,
			Sheet:       Sheet{Kind: SheetFixed, Width: 128, Height: 128},
			PaletteMode: PaletteIndexed,
			Dither:      "ordered",
		},
	}
}
