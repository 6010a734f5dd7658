// Package validate reports problems in a registry of assets before a build.
//
// [Run] executes every check and returns all findings at once. Errors mark
// problems that would fail the build (missing references, cycles, undefined
// colours); warnings mark likely mistakes that still render, such as glyphs
// without a legend entry or legend entries that are never used.
package validate

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/dag"
	"github.com/matzehuels/pixelforge/pkg/effect"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/palette"
)

// Check names.
const (
	CheckInvalidName       = "invalid-name"
	CheckEmptyGrid         = "empty-grid"
	CheckShadowedBuiltin   = "shadowed-builtin"
	CheckMissingStamp      = "missing-stamp"
	CheckMissingBrush      = "missing-brush"
	CheckMissingReference  = "missing-reference"
	CheckUnmappedGlyph     = "unmapped-glyph"
	CheckUnusedLegend      = "unused-legend"
	CheckStampSizeMismatch = "stamp-size-mismatch"
	CheckPalette           = "palette"
	CheckPaletteColour     = "missing-palette-colour"
	CheckShader            = "shader"
	CheckUnknownVariant    = "unknown-variant"
	CheckUnknownEffect     = "unknown-effect"
	CheckTarget            = "target"
	CheckDependencyCycle   = "dependency-cycle"
)

type checker struct {
	reg      *asset.Registry
	palettes map[string]*palette.Palette
	res      Result
}

// Run validates reg and returns every finding, ordered by check and then
// by asset.
func Run(reg *asset.Registry) Result {
	c := &checker{reg: reg}
	c.checkNames()
	c.checkEmptyGrids()
	c.checkShadowedBuiltins()
	c.checkShapeLegends()
	c.checkCompositeLegends()
	c.checkUnmappedGlyphs()
	c.checkUnusedLegends()
	c.checkStampSizes()
	c.checkPalettes()
	c.checkBindings()
	c.checkShaders()
	c.checkTargets()
	c.checkCycles()
	return c.res
}

func (c *checker) userIDs(kind asset.Kind) []asset.ID {
	var ids []asset.ID
	for _, name := range c.reg.Names(kind) {
		if id := asset.NewID(kind, name); !c.reg.IsBuiltin(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *checker) composites() []*asset.Composite {
	var out []*asset.Composite
	for _, name := range c.reg.Names(asset.KindPrefab) {
		out = append(out, c.reg.Prefabs[name])
	}
	for _, name := range c.reg.Names(asset.KindMap) {
		out = append(out, c.reg.Maps[name])
	}
	return out
}

func (c *checker) checkNames() {
	for _, id := range c.reg.IDs() {
		if c.reg.IsBuiltin(id) {
			continue
		}
		if err := errors.ValidateAssetName(id.Name); err != nil {
			c.res.errorf(CheckInvalidName, errors.ErrCodeInvalidName, id,
				"Names become file names; use letters, digits, '-' and '_'",
				"%s: %s", id, errors.UserMessage(err))
		}
	}
}

func (c *checker) checkEmptyGrids() {
	const help = "Add at least one row of characters to the grid"
	for _, name := range c.reg.Names(asset.KindShape) {
		if s := c.reg.Shapes[name]; s.Grid.IsEmpty() {
			c.res.errorf(CheckEmptyGrid, errors.ErrCodeInvalidDocument, asset.NewID(asset.KindShape, name), help,
				"Shape '%s' has an empty grid", name)
		}
	}
	for _, comp := range c.composites() {
		if comp.Grid.IsEmpty() {
			c.res.errorf(CheckEmptyGrid, errors.ErrCodeInvalidDocument, comp.ID(), help,
				"%s '%s' has an empty grid", title(comp.Kind), comp.Name)
		}
	}
}

func (c *checker) checkShadowedBuiltins() {
	const help = "Use distinct names to avoid ambiguous references"
	for _, id := range c.userIDs(asset.KindStamp) {
		st := c.reg.Stamps[id.Name]
		if _, ok := asset.BuiltinStamp(id.Name); ok {
			c.res.warnf(CheckShadowedBuiltin, id, help, "Stamp '%s' shadows the builtin stamp of the same name", id.Name)
		}
		if b, ok := asset.BuiltinGlyph(st.Glyph); ok && st.Glyph != 0 && b.Name != id.Name {
			c.res.warnf(CheckShadowedBuiltin, id, help, "Stamp '%s' claims glyph '%c' of builtin stamp '%s'", id.Name, st.Glyph, b.Name)
		}
	}
	for _, id := range c.userIDs(asset.KindBrush) {
		if _, ok := asset.BuiltinBrush(id.Name); ok {
			c.res.warnf(CheckShadowedBuiltin, id, help, "Brush '%s' shadows the builtin brush of the same name", id.Name)
		}
	}
}

func (c *checker) hasStamp(name string) bool {
	if _, ok := c.reg.Stamps[name]; ok {
		return true
	}
	_, ok := asset.BuiltinStamp(name)
	return ok
}

func (c *checker) hasBrush(name string) bool {
	if _, ok := c.reg.Brushes[name]; ok {
		return true
	}
	_, ok := asset.BuiltinBrush(name)
	return ok
}

func (c *checker) checkShapeLegends() {
	for _, name := range c.reg.Names(asset.KindShape) {
		s := c.reg.Shapes[name]
		id := asset.NewID(asset.KindShape, name)
		for _, glyph := range s.LegendGlyphs() {
			e := s.Legend[glyph]
			switch e.Kind {
			case asset.LegendStamp:
				if !c.hasStamp(e.Name) {
					c.res.errorf(CheckMissingStamp, errors.ErrCodeMissingReference, id,
						"Define the stamp, or use a builtin stamp name",
						"Shape '%s': legend '%c' references stamp '%s' which does not exist", name, glyph, e.Name)
				}
			case asset.LegendBrush, asset.LegendFill:
				if !c.hasBrush(e.Name) {
					c.res.errorf(CheckMissingBrush, errors.ErrCodeMissingReference, id,
						"Define the brush, or use a builtin brush name",
						"Shape '%s': legend '%c' references brush '%s' which does not exist", name, glyph, e.Name)
				}
			}
		}
	}
}

func (c *checker) checkCompositeLegends() {
	for _, comp := range c.composites() {
		for _, glyph := range comp.LegendGlyphs() {
			ref := comp.Legend[glyph]
			if comp.Kind == asset.KindMap && ref == asset.EmptyRef {
				continue
			}
			if _, ok := c.reg.ResolvePiece(ref); !ok {
				c.res.errorf(CheckMissingReference, errors.ErrCodeMissingReference, comp.ID(),
					"Define a shape or prefab with this name",
					"%s '%s': legend '%c' references '%s' which is not a known shape or prefab",
					title(comp.Kind), comp.Name, glyph, ref)
			}
		}
	}
}

func (c *checker) userGlyphs() map[rune]bool {
	out := make(map[rune]bool)
	for _, st := range c.reg.Stamps {
		if st.Glyph != 0 {
			out[st.Glyph] = true
		}
	}
	return out
}

func (c *checker) checkUnmappedGlyphs() {
	stamped := c.userGlyphs()
	for _, name := range c.reg.Names(asset.KindShape) {
		s := c.reg.Shapes[name]
		if s.Grid.IsEmpty() {
			continue
		}
		for _, glyph := range s.Grid.Glyphs() {
			if _, ok := s.Legend[glyph]; ok || stamped[glyph] {
				continue
			}
			if _, ok := asset.BuiltinGlyph(glyph); ok {
				continue
			}
			c.res.warnf(CheckUnmappedGlyph, asset.NewID(asset.KindShape, name),
				"Add a legend entry or use a builtin glyph (+, -, |, #, ., x, space)",
				"Shape '%s': glyph '%c' has no legend entry and is not a stamp glyph", name, glyph)
		}
	}
	for _, comp := range c.composites() {
		if comp.Grid.IsEmpty() {
			continue
		}
		for _, glyph := range comp.Grid.Glyphs() {
			if _, ok := comp.Legend[glyph]; ok || glyph == ' ' {
				continue
			}
			c.res.warnf(CheckUnmappedGlyph, comp.ID(),
				"Add a legend entry mapping this glyph to a shape or prefab",
				"%s '%s': glyph '%c' has no legend entry", title(comp.Kind), comp.Name, glyph)
		}
	}
}

func (c *checker) checkUnusedLegends() {
	const help = "Remove the unused legend entry or add the glyph to the grid"
	for _, name := range c.reg.Names(asset.KindShape) {
		s := c.reg.Shapes[name]
		used := s.Grid.Glyphs()
		for _, glyph := range s.LegendGlyphs() {
			if !slices.Contains(used, glyph) {
				c.res.warnf(CheckUnusedLegend, asset.NewID(asset.KindShape, name), help,
					"Shape '%s': legend entry '%c' is never used in the grid", name, glyph)
			}
		}
	}
	for _, comp := range c.composites() {
		used := comp.Grid.Glyphs()
		for _, glyph := range comp.LegendGlyphs() {
			if !slices.Contains(used, glyph) {
				c.res.warnf(CheckUnusedLegend, comp.ID(), help,
					"%s '%s': legend entry '%c' is never used in the grid", title(comp.Kind), comp.Name, glyph)
			}
		}
	}
}

func (c *checker) stamp(name string) (*asset.Stamp, bool) {
	if st, ok := c.reg.Stamps[name]; ok {
		return st, true
	}
	return asset.BuiltinStamp(name)
}

func (c *checker) checkStampSizes() {
	for _, name := range c.reg.Names(asset.KindShape) {
		s := c.reg.Shapes[name]
		var details []string
		sizes := make(map[[2]int]bool)
		seen := make(map[string]bool)
		for _, glyph := range s.LegendGlyphs() {
			e := s.Legend[glyph]
			if e.Kind != asset.LegendStamp || seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			st, ok := c.stamp(e.Name)
			if !ok {
				continue
			}
			sizes[[2]int{st.Width(), st.Height()}] = true
			details = append(details, fmt.Sprintf("'%s' (%dx%d)", st.Name, st.Width(), st.Height()))
		}
		if len(sizes) > 1 {
			c.res.warnf(CheckStampSizeMismatch, asset.NewID(asset.KindShape, name),
				"Stamps in the same shape should have the same dimensions",
				"Shape '%s' uses stamps of different sizes: %s", name, strings.Join(details, ", "))
		}
	}
}

func (c *checker) checkPalettes() {
	palettes, err := palette.ResolveAll(c.reg.Palettes)
	c.palettes = palettes
	for _, e := range errors.Flatten(err) {
		c.res.errorf(CheckPalette, codeOf(e, errors.ErrCodeInvalidExpression), asset.ID{Kind: asset.KindPalette},
			"Check the palette's colour definitions and parent", "%s", errors.UserMessage(e))
	}
}

// knownColours lists every base and variant colour name of every palette.
func (c *checker) knownColours() map[string]bool {
	known := make(map[string]bool)
	for _, b := range c.reg.Palettes {
		for _, d := range b.Definitions() {
			known[d.Name] = true
		}
		for _, defs := range b.VariantDefinitions() {
			for _, d := range defs {
				known[d.Name] = true
			}
		}
	}
	for _, p := range c.palettes {
		for _, n := range p.Names() {
			known[n] = true
		}
	}
	return known
}

func (c *checker) checkBindings() {
	known := c.knownColours()
	for _, name := range c.reg.Names(asset.KindShape) {
		s := c.reg.Shapes[name]
		id := asset.NewID(asset.KindShape, name)
		for _, glyph := range s.LegendGlyphs() {
			e := s.Legend[glyph]
			for _, letter := range slices.Sorted(maps.Keys(e.Bindings)) {
				ref := e.Bindings[letter]
				expr, err := colour.ParseExpr(ref)
				if err != nil {
					c.res.errorf(CheckPaletteColour, errors.ErrCodeInvalidExpression, id, "",
						"Shape '%s': legend '%c' token '%c': %s", name, glyph, letter, errors.UserMessage(err))
					continue
				}
				for _, r := range expr.Refs() {
					if !known[r] {
						c.res.warnf(CheckPaletteColour, id, "Define the colour in a palette",
							"Shape '%s': legend '%c' token '%c' references colour '%s' not found in any palette",
							name, glyph, letter, r)
					}
				}
			}
		}
	}
}

func (c *checker) checkShaders() {
	for _, name := range c.reg.Names(asset.KindShader) {
		id := asset.NewID(asset.KindShader, name)
		sh, err := asset.FlattenShader(c.reg.Shaders, name)
		if err != nil {
			c.res.errorf(CheckShader, codeOf(err, errors.ErrCodeInvalidDocument), id, "", "%s", errors.UserMessage(err))
			continue
		}
		if err := effect.Validate(sh.Effects); err != nil {
			c.res.errorf(CheckUnknownEffect, errors.ErrCodeUnknownEffect, id,
				"Supported effects: "+strings.Join(effect.Names(), ", "),
				"Shader '%s': %s", name, errors.UserMessage(err))
		}
		if _, ok := c.reg.Palettes[sh.Palette]; !ok {
			c.res.errorf(CheckShader, errors.ErrCodeMissingReference, id, "Define the palette or use 'default'",
				"Shader '%s' uses palette '%s' which does not exist", name, sh.Palette)
			continue
		}
		if p, ok := c.palettes[sh.Palette]; ok && sh.Variant != "" && !p.HasVariant(sh.Variant) {
			c.res.errorf(CheckUnknownVariant, errors.ErrCodeMissingReference, id, "",
				"Shader '%s' selects variant '%s' which palette '%s' does not define", name, sh.Variant, sh.Palette)
		}
	}
}

func (c *checker) checkTargets() {
	for _, name := range c.reg.Names(asset.KindTarget) {
		t := c.reg.Targets[name]
		id := asset.NewID(asset.KindTarget, name)
		if err := t.Validate(); err != nil {
			c.res.errorf(CheckTarget, errors.ErrCodeInvalidDocument, id, "", "%s", errors.UserMessage(err))
		}
		if t.Shader != "" {
			if _, ok := c.reg.Shaders[t.Shader]; !ok {
				c.res.errorf(CheckTarget, errors.ErrCodeMissingReference, id, "",
					"Target '%s' uses shader '%s' which does not exist", name, t.Shader)
			}
		}
	}
}

func (c *checker) checkCycles() {
	_, err := dag.FromRegistry(c.reg).BuildOrder()
	var cyc *dag.CycleError
	if errors.As(err, &cyc) && len(cyc.Cycle) > 0 {
		c.res.errorf(CheckDependencyCycle, errors.ErrCodeDependencyCycle, cyc.Cycle[0],
			"Break the cycle by removing one of the references", "%s", cyc.Error())
	}
}

func codeOf(err error, def errors.Code) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return def
}

func title(k asset.Kind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
