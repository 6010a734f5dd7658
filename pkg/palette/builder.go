package palette

import (
	"strings"

	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Definition is one unresolved colour: a name and its source expression.
type Definition struct {
	Name  string
	Value string
}

// Builder collects unresolved definitions for one palette.
type Builder struct {
	Name string
	// Parent names the palette to inherit from, or is empty.
	Parent string

	defs     []Definition
	variants map[string][]Definition
	order    []string // variant names in first-definition order
}

// NewBuilder returns a builder for the named palette.
func NewBuilder(name string) *Builder {
	return &Builder{Name: name, variants: make(map[string][]Definition)}
}

// Define adds a base colour definition.
func (b *Builder) Define(name, value string) *Builder {
	b.defs = append(b.defs, Definition{Name: strings.TrimPrefix(name, "$"), Value: value})
	return b
}

// DefineVariant adds a colour override to the named variant.
func (b *Builder) DefineVariant(variant, name, value string) *Builder {
	if _, ok := b.variants[variant]; !ok {
		b.order = append(b.order, variant)
	}
	b.variants[variant] = append(b.variants[variant], Definition{Name: strings.TrimPrefix(name, "$"), Value: value})
	return b
}

// Inherits sets the parent palette name.
func (b *Builder) Inherits(parent string) *Builder {
	b.Parent = parent
	return b
}

// Definitions returns the base definitions in insertion order.
func (b *Builder) Definitions() []Definition { return b.defs }

// VariantDefinitions returns the definitions of every variant, keyed by name.
func (b *Builder) VariantDefinitions() map[string][]Definition { return b.variants }

// Build resolves every definition and returns the palette. parent may be
// nil; when set, its colours are inherited without overwriting local ones.
//
// A definition that refers back to itself, directly or through other local
// definitions, fails with CIRCULAR_COLOUR_REFERENCE naming the colour. A
// reference with no local or inherited definition fails with
// UNDEFINED_COLOUR. A variant colour referring to its own name reads the
// base (or inherited) value it overlays.
func (b *Builder) Build(parent *Palette) (*Palette, error) {
	p := New(b.Name)
	if parent != nil {
		p.mergeFrom(parent)
	}

	base, err := resolveAll(b.Name, b.defs, p.Get, nil)
	if err != nil {
		return nil, err
	}
	for _, d := range b.defs {
		p.colours[d.Name] = base[d.Name]
	}

	for _, variant := range b.order {
		defs := b.variants[variant]
		resolved, err := resolveAll(b.Name+"."+variant, defs, func(name string) (colour.Colour, bool) {
			return p.Variant(variant, name)
		}, p.Get)
		if err != nil {
			return nil, err
		}
		dst, ok := p.variants[variant]
		if !ok {
			dst = make(map[string]colour.Colour, len(defs))
			p.variants[variant] = dst
		}
		for _, d := range defs {
			dst[d.Name] = resolved[d.Name]
		}
	}
	return p, nil
}

// resolver evaluates one set of definitions against a fallback lookup,
// tracking names currently being resolved.
type resolver struct {
	scope    string
	defs     map[string]colour.Expr
	fallback colour.Lookup
	// shadowed, when set, supplies the value a definition overlays, so a
	// variant colour may be written in terms of its own base value.
	shadowed   colour.Lookup
	resolved   map[string]colour.Colour
	inProgress map[string]bool
}

func resolveAll(scope string, defs []Definition, fallback, shadowed colour.Lookup) (map[string]colour.Colour, error) {
	r := &resolver{
		scope:      scope,
		defs:       make(map[string]colour.Expr, len(defs)),
		fallback:   fallback,
		shadowed:   shadowed,
		resolved:   make(map[string]colour.Colour, len(defs)),
		inProgress: make(map[string]bool),
	}
	for _, d := range defs {
		expr, err := colour.ParseExpr(d.Value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "palette %s: colour %s", scope, d.Name)
		}
		r.defs[d.Name] = expr
	}
	for _, d := range defs {
		if _, err := r.resolve(d.Name); err != nil {
			return nil, err
		}
	}
	return r.resolved, nil
}

func (r *resolver) resolve(name string) (colour.Colour, error) {
	if c, ok := r.resolved[name]; ok {
		return c, nil
	}
	if r.inProgress[name] {
		return colour.Colour{}, errors.New(errors.ErrCodeCircularColourReference,
			"palette %s: circular colour reference: $%s", r.scope, name)
	}

	expr, ok := r.defs[name]
	if !ok {
		if c, ok := r.fallback(name); ok {
			return c, nil
		}
		return colour.Colour{}, errors.New(errors.ErrCodeUndefinedColour,
			"palette %s: undefined colour: $%s", r.scope, name)
	}

	r.inProgress[name] = true
	defer delete(r.inProgress, name)

	var lookupErr error
	c, err := colour.Eval(expr, func(ref string) (colour.Colour, bool) {
		ref = strings.TrimPrefix(ref, "$")
		if ref == name && r.shadowed != nil {
			if c, ok := r.shadowed(ref); ok {
				return c, true
			}
		}
		c, err := r.resolve(ref)
		if err != nil {
			if lookupErr == nil {
				lookupErr = err
			}
			return colour.Colour{}, false
		}
		return c, true
	})
	if lookupErr != nil {
		return colour.Colour{}, lookupErr
	}
	if err != nil {
		return colour.Colour{}, errors.Wrap(errors.GetCode(err), err, "palette %s: colour %s", r.scope, name)
	}
	r.resolved[name] = c
	return c, nil
}
