package asset

import (
	"maps"
	"slices"
)

// LegendKind selects how a shape legend entry is rendered.
type LegendKind int

const (
	// LegendStamp renders the named stamp's token at the cell's local origin.
	LegendStamp LegendKind = iota
	// LegendBrush renders one swatch of the named brush at the local origin.
	LegendBrush
	// LegendFill samples the named brush at the cell's absolute position,
	// so the pattern tiles across the whole shape.
	LegendFill
)

func (k LegendKind) String() string {
	switch k {
	case LegendBrush:
		return "brush"
	case LegendFill:
		return "fill"
	}
	return "stamp"
}

// LegendEntry maps one shape glyph to a stamp or brush.
type LegendEntry struct {
	Kind LegendKind
	Name string
	// Bindings maps brush letters to colour sources: #hex, $name or name.
	Bindings map[rune]string
}

// StampEntry is a legend entry referencing a stamp.
func StampEntry(name string) LegendEntry {
	return LegendEntry{Kind: LegendStamp, Name: name}
}

// BrushEntry is a legend entry rendering one swatch of a brush.
func BrushEntry(name string, bindings map[rune]string) LegendEntry {
	return LegendEntry{Kind: LegendBrush, Name: name, Bindings: bindings}
}

// FillEntry is a legend entry tiling a brush across the shape.
func FillEntry(name string, bindings map[rune]string) LegendEntry {
	return LegendEntry{Kind: LegendFill, Name: name, Bindings: bindings}
}

// Shape is a character grid whose glyphs resolve to single pixels.
type Shape struct {
	Name   string
	Tags   []string
	Grid   Grid
	Legend map[rune]LegendEntry
	// Scale is the preferred output upscale; zero means unset.
	Scale int
}

// LegendGlyphs returns the legend keys in sorted order.
func (s *Shape) LegendGlyphs() []rune {
	return slices.Sorted(maps.Keys(s.Legend))
}

// EmptyRef is the map legend value meaning "leave this cell blank".
const EmptyRef = "empty"

// Composite is a prefab or map: a character grid whose glyphs place whole
// rendered pieces. Prefabs reference shapes or other prefabs; maps reference
// shapes or prefabs, and may use [EmptyRef].
type Composite struct {
	Kind   Kind // KindPrefab or KindMap
	Name   string
	Tags   []string
	Grid   Grid
	Legend map[rune]string
	Scale  int
}

// ID returns the composite's asset ID.
func (c *Composite) ID() ID { return NewID(c.Kind, c.Name) }

// LegendGlyphs returns the legend keys in sorted order.
func (c *Composite) LegendGlyphs() []rune {
	return slices.Sorted(maps.Keys(c.Legend))
}

// References returns the distinct names referenced by the legend, sorted,
// excluding [EmptyRef] for maps.
func (c *Composite) References() []string {
	seen := make(map[string]bool)
	for _, name := range c.Legend {
		if c.Kind == KindMap && name == EmptyRef {
			continue
		}
		seen[name] = true
	}
	return slices.Sorted(maps.Keys(seen))
}
