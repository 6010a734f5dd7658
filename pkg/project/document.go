package project

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/palette"
)

// document is the raw TOML layout of one project file. Sections are keyed
// by asset name.
type document struct {
	Palette map[string]paletteDoc `toml:"palette"`
	Stamp   map[string]stampDoc   `toml:"stamp"`
	Brush   map[string]brushDoc   `toml:"brush"`
	Shader  map[string]shaderDoc  `toml:"shader"`
	Shape   map[string]shapeDoc   `toml:"shape"`
	Prefab  map[string]gridDoc    `toml:"prefab"`
	Map     map[string]gridDoc    `toml:"map"`
	Target  map[string]targetDoc  `toml:"target"`
}

type paletteDoc struct {
	Parent   string                       `toml:"parent"`
	Colours  map[string]string            `toml:"colours"`
	Variants map[string]map[string]string `toml:"variants"`
}

type stampDoc struct {
	Glyph string `toml:"glyph"`
	Grid  string `toml:"grid"`
}

type brushDoc struct {
	Grid string `toml:"grid"`
}

type shaderDoc struct {
	Palette string           `toml:"palette"`
	Variant string           `toml:"variant"`
	Parent  string           `toml:"parent"`
	Effects []map[string]any `toml:"effects"`
}

type shapeDoc struct {
	Tags   []string       `toml:"tags"`
	Scale  int            `toml:"scale"`
	Grid   string         `toml:"grid"`
	Legend map[string]any `toml:"legend"`
}

type gridDoc struct {
	Tags   []string          `toml:"tags"`
	Scale  int               `toml:"scale"`
	Grid   string            `toml:"grid"`
	Legend map[string]string `toml:"legend"`
}

type targetDoc struct {
	Format  string `toml:"format"`
	Scale   int    `toml:"scale"`
	Sheet   any    `toml:"sheet"`
	Padding int    `toml:"padding"`
	Palette string `toml:"palette"`
	Shader  string `toml:"shader"`
	Dither  string `toml:"dither"`
}

// staged holds the converted assets of one document until it is known to
// be valid.
type staged struct {
	palettes   []*palette.Builder
	stamps     []*asset.Stamp
	brushes    []*asset.Brush
	shaders    []*asset.Shader
	shapes     []*asset.Shape
	composites []*asset.Composite
	targets    []*asset.Target
}

func (s *staged) addTo(reg *asset.Registry) {
	for _, p := range s.palettes {
		reg.AddPalette(p)
	}
	for _, st := range s.stamps {
		reg.AddStamp(st)
	}
	for _, b := range s.brushes {
		reg.AddBrush(b)
	}
	for _, sh := range s.shaders {
		reg.AddShader(sh)
	}
	for _, sh := range s.shapes {
		reg.AddShape(sh)
	}
	for _, c := range s.composites {
		reg.AddComposite(c)
	}
	for _, t := range s.targets {
		reg.AddTarget(t)
	}
}

// assets converts every section, collecting one error per invalid asset.
func (d *document) assets(source string) (*staged, error) {
	out := &staged{}
	var errs []error
	fail := func(kind asset.Kind, name string, err error) {
		errs = append(errs, errors.Wrap(errors.ErrCodeInvalidDocument, err,
			"%s: %s '%s'", source, kind, name))
	}
	named := func(kind asset.Kind, name string) bool {
		if err := errors.ValidateAssetName(name); err != nil {
			fail(kind, name, err)
			return false
		}
		return true
	}

	for _, name := range sortedKeys(d.Palette) {
		if named(asset.KindPalette, name) {
			out.palettes = append(out.palettes, d.Palette[name].builder(name))
		}
	}
	for _, name := range sortedKeys(d.Stamp) {
		if !named(asset.KindStamp, name) {
			continue
		}
		st, err := d.Stamp[name].stamp(name)
		if err != nil {
			fail(asset.KindStamp, name, err)
			continue
		}
		out.stamps = append(out.stamps, st)
	}
	for _, name := range sortedKeys(d.Brush) {
		if !named(asset.KindBrush, name) {
			continue
		}
		b, err := asset.NewBrush(name, lines(d.Brush[name].Grid))
		if err != nil {
			fail(asset.KindBrush, name, err)
			continue
		}
		out.brushes = append(out.brushes, b)
	}
	for _, name := range sortedKeys(d.Shader) {
		if !named(asset.KindShader, name) {
			continue
		}
		sh, err := d.Shader[name].shader(name)
		if err != nil {
			fail(asset.KindShader, name, err)
			continue
		}
		out.shaders = append(out.shaders, sh)
	}
	for _, name := range sortedKeys(d.Shape) {
		if !named(asset.KindShape, name) {
			continue
		}
		sh, err := d.Shape[name].shape(name)
		if err != nil {
			fail(asset.KindShape, name, err)
			continue
		}
		out.shapes = append(out.shapes, sh)
	}
	for _, kind := range []asset.Kind{asset.KindPrefab, asset.KindMap} {
		docs := d.Prefab
		if kind == asset.KindMap {
			docs = d.Map
		}
		for _, name := range sortedKeys(docs) {
			if !named(kind, name) {
				continue
			}
			c, err := docs[name].composite(kind, name)
			if err != nil {
				fail(kind, name, err)
				continue
			}
			out.composites = append(out.composites, c)
		}
	}
	for _, name := range sortedKeys(d.Target) {
		if !named(asset.KindTarget, name) {
			continue
		}
		t, err := d.Target[name].target(name)
		if err != nil {
			fail(asset.KindTarget, name, err)
			continue
		}
		out.targets = append(out.targets, t)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (p paletteDoc) builder(name string) *palette.Builder {
	b := palette.NewBuilder(name)
	if p.Parent != "" {
		b.Inherits(p.Parent)
	}
	for _, c := range sortedKeys(p.Colours) {
		b.Define(c, p.Colours[c])
	}
	for _, v := range sortedKeys(p.Variants) {
		for _, c := range sortedKeys(p.Variants[v]) {
			b.DefineVariant(v, c, p.Variants[v][c])
		}
	}
	return b
}

func (s stampDoc) stamp(name string) (*asset.Stamp, error) {
	var glyph rune
	if s.Glyph != "" {
		g, err := errors.ValidateGlyph(s.Glyph)
		if err != nil {
			return nil, err
		}
		glyph = g
	}
	return asset.NewStamp(name, glyph, lines(s.Grid))
}

func (s shaderDoc) shader(name string) (*asset.Shader, error) {
	sh := &asset.Shader{Name: name, Palette: s.Palette, Variant: s.Variant, Parent: s.Parent}
	for i, raw := range s.Effects {
		e, err := effectFrom(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "effect %d", i+1)
		}
		sh.Effects = append(sh.Effects, e)
	}
	return sh, nil
}

// effectFrom converts an effect table: a string "type" plus numeric
// parameters.
func effectFrom(raw map[string]any) (asset.Effect, error) {
	typ, ok := raw["type"].(string)
	if !ok || typ == "" {
		return asset.Effect{}, errors.New(errors.ErrCodeInvalidDocument, "missing effect type")
	}
	e := asset.Effect{Name: typ, Params: make(map[string]float64)}
	for _, k := range sortedKeys(raw) {
		if k == "type" {
			continue
		}
		switch v := raw[k].(type) {
		case int64:
			e.Params[k] = float64(v)
		case float64:
			e.Params[k] = v
		default:
			return asset.Effect{}, errors.New(errors.ErrCodeInvalidDocument,
				"effect %s: parameter %s must be a number, got %T", typ, k, v)
		}
	}
	return e, nil
}

func (s shapeDoc) shape(name string) (*asset.Shape, error) {
	sh := &asset.Shape{
		Name:   name,
		Tags:   s.Tags,
		Grid:   asset.ParseGrid(s.Grid),
		Legend: make(map[rune]asset.LegendEntry, len(s.Legend)),
		Scale:  s.Scale,
	}
	for _, key := range sortedKeys(s.Legend) {
		glyph, err := errors.ValidateGlyph(key)
		if err != nil {
			return nil, err
		}
		e, err := legendEntry(s.Legend[key])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "legend '%s'", key)
		}
		sh.Legend[glyph] = e
	}
	return sh, nil
}

// legendEntry accepts a bare stamp name or a table with exactly one of
// stamp, brush or fill, plus bindings for brushes and fills.
func legendEntry(raw any) (asset.LegendEntry, error) {
	switch v := raw.(type) {
	case string:
		return asset.StampEntry(v), nil
	case map[string]any:
		var kinds []string
		for _, k := range []string{"stamp", "brush", "fill"} {
			if _, ok := v[k]; ok {
				kinds = append(kinds, k)
			}
		}
		if len(kinds) != 1 {
			return asset.LegendEntry{}, errors.New(errors.ErrCodeInvalidDocument,
				"expected exactly one of stamp, brush or fill")
		}
		name, ok := v[kinds[0]].(string)
		if !ok || name == "" {
			return asset.LegendEntry{}, errors.New(errors.ErrCodeInvalidDocument, "%s must be a name", kinds[0])
		}
		bindings, err := bindingsFrom(v["bindings"])
		if err != nil {
			return asset.LegendEntry{}, err
		}
		switch kinds[0] {
		case "stamp":
			if len(bindings) > 0 {
				return asset.LegendEntry{}, errors.New(errors.ErrCodeInvalidDocument, "stamps take no bindings")
			}
			return asset.StampEntry(name), nil
		case "brush":
			return asset.BrushEntry(name, bindings), nil
		default:
			return asset.FillEntry(name, bindings), nil
		}
	}
	return asset.LegendEntry{}, errors.New(errors.ErrCodeInvalidDocument, "unsupported legend value %T", raw)
}

func bindingsFrom(raw any) (map[rune]string, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "bindings must be a table")
	}
	out := make(map[rune]string, len(m))
	for _, k := range sortedKeys(m) {
		letter, err := errors.ValidateGlyph(k)
		if err != nil {
			return nil, err
		}
		ref, ok := m[k].(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "binding %s must be a colour string", k)
		}
		out[letter] = ref
	}
	return out, nil
}

func (g gridDoc) composite(kind asset.Kind, name string) (*asset.Composite, error) {
	c := &asset.Composite{
		Kind:   kind,
		Name:   name,
		Tags:   g.Tags,
		Grid:   asset.ParseGrid(g.Grid),
		Legend: make(map[rune]string, len(g.Legend)),
		Scale:  g.Scale,
	}
	for _, key := range sortedKeys(g.Legend) {
		glyph, err := errors.ValidateGlyph(key)
		if err != nil {
			return nil, err
		}
		c.Legend[glyph] = g.Legend[key]
	}
	return c, nil
}

func (t targetDoc) target(name string) (*asset.Target, error) {
	sheet, err := sheetFrom(t.Sheet)
	if err != nil {
		return nil, err
	}
	out := &asset.Target{
		Name:        name,
		Format:      strings.ToLower(t.Format),
		Scale:       t.Scale,
		Sheet:       sheet,
		Padding:     t.Padding,
		PaletteMode: asset.PaletteMode(strings.ToLower(t.Palette)),
		Shader:      t.Shader,
		Dither:      t.Dither,
	}
	if out.Format == "" {
		out.Format = asset.FormatPNG
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// sheetFrom accepts a bool or a sheet string.
func sheetFrom(raw any) (asset.Sheet, error) {
	switch v := raw.(type) {
	case nil:
		return asset.Sheet{}, nil
	case bool:
		return asset.ParseSheet(fmt.Sprint(v))
	case string:
		return asset.ParseSheet(v)
	}
	return asset.Sheet{}, errors.New(errors.ErrCodeInvalidDocument, "sheet must be a bool or a string, got %T", raw)
}

// lines splits a multi-line grid, dropping leading and trailing blank
// lines and carriage returns.
func lines(text string) []string {
	text = strings.Trim(text, "\n")
	if text == "" {
		return nil
	}
	out := strings.Split(text, "\n")
	for i, l := range out {
		out[i] = strings.TrimRight(l, "\r")
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
