// Package palette stores named colours with optional variant overlays and
// builds them from unresolved colour expressions.
//
// A palette is assembled by a [Builder]. Definitions may reference each
// other freely ($gold, darken($gold, 20%)) and are resolved together when
// [Builder.Build] is called. Colours inherited from a parent palette are
// valid reference targets but are already resolved, so they never take part
// in cycle detection.
//
// Variants overlay the base colours: [Palette.Variant] consults the variant
// first and falls back to the base mapping.
package palette

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/colour"
)

// DefaultName is the name of the builtin palette.
const DefaultName = "default"

// Palette is a resolved, immutable set of named colours.
type Palette struct {
	name     string
	colours  map[string]colour.Colour
	variants map[string]map[string]colour.Colour
}

// New returns an empty palette.
func New(name string) *Palette {
	return &Palette{
		name:     name,
		colours:  make(map[string]colour.Colour),
		variants: make(map[string]map[string]colour.Colour),
	}
}

// Default returns the builtin palette: black, white, edge=black, fill=white.
func Default() *Palette {
	p := New(DefaultName)
	p.colours["black"] = colour.Black
	p.colours["white"] = colour.White
	p.colours["edge"] = colour.Black
	p.colours["fill"] = colour.White
	return p
}

// Name returns the palette name.
func (p *Palette) Name() string { return p.name }

// Len returns the number of base colours.
func (p *Palette) Len() int { return len(p.colours) }

// Get returns a base colour. A leading $ is ignored.
func (p *Palette) Get(name string) (colour.Colour, bool) {
	c, ok := p.colours[strings.TrimPrefix(name, "$")]
	return c, ok
}

// Variant returns a colour with the named variant applied: the variant's
// override if present, otherwise the base colour. An empty variant is the
// same as [Palette.Get].
func (p *Palette) Variant(variant, name string) (colour.Colour, bool) {
	name = strings.TrimPrefix(name, "$")
	if v, ok := p.variants[variant]; ok {
		if c, ok := v[name]; ok {
			return c, true
		}
	}
	c, ok := p.colours[name]
	return c, ok
}

// Lookup returns a [colour.Lookup] bound to the given variant.
func (p *Palette) Lookup(variant string) colour.Lookup {
	return func(name string) (colour.Colour, bool) {
		return p.Variant(variant, name)
	}
}

// Names returns the base colour names in sorted order.
func (p *Palette) Names() []string {
	return slices.Sorted(maps.Keys(p.colours))
}

// Variants returns the variant names in sorted order.
func (p *Palette) Variants() []string {
	return slices.Sorted(maps.Keys(p.variants))
}

// VariantNames returns the colour names overridden by a variant, sorted.
func (p *Palette) VariantNames(variant string) []string {
	return slices.Sorted(maps.Keys(p.variants[variant]))
}

// HasVariant reports whether the palette defines the named variant.
func (p *Palette) HasVariant(variant string) bool {
	_, ok := p.variants[variant]
	return ok
}

// mergeFrom copies colours from parent without overwriting existing entries.
func (p *Palette) mergeFrom(parent *Palette) {
	for name, c := range parent.colours {
		if _, ok := p.colours[name]; !ok {
			p.colours[name] = c
		}
	}
	for variant, overrides := range parent.variants {
		dst, ok := p.variants[variant]
		if !ok {
			dst = make(map[string]colour.Colour, len(overrides))
			p.variants[variant] = dst
		}
		for name, c := range overrides {
			if _, ok := dst[name]; !ok {
				dst[name] = c
			}
		}
	}
}
