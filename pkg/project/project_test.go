package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

const village = `
[palette.dusk]
parent = "default"
colours = { gold = "#FFD700", edge = "darken($gold, 40%)" }

[palette.dusk.variants.night]
gold = "#806B00"

[stamp.brick]
glyph = "B"
grid = '''
$$
$.
'''

[brush.waves]
grid = '''
AB
BA
'''

[shader.warm]
palette = "dusk"
variant = "night"

[[shader.warm.effects]]
type = "vignette"
strength = 0.4

[[shader.warm.effects]]
type = "scanlines"
gap = 3

[shape.wall]
tags = ["solid", "wall"]
scale = 2
grid = '''
+--+
|~B|
'''

[shape.wall.legend]
"~" = { fill = "checker", bindings = { A = "$gold", B = "#000" } }
"B" = "brick"
"w" = { brush = "waves" }

[prefab.house]
grid = "WW"
legend = { W = "wall" }

[map.town]
grid = '''
H.
'''
legend = { H = "house", "." = "empty" }

[target.game]
format = "PNG"
scale = 4
sheet = "16x8"
padding = 1
palette = "indexed"
shader = "warm"

[target.cart]
format = "p8"
sheet = true
dither = "fs"
`

func decode(t *testing.T, doc string) (*asset.Registry, error) {
	t.Helper()
	reg := asset.NewRegistry().WithBuiltins()
	err := Decode(strings.NewReader(doc), "test.toml", reg)
	return reg, err
}

func TestDecode(t *testing.T) {
	reg, err := decode(t, village)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dusk := reg.Palettes["dusk"]
	if dusk == nil || dusk.Parent != "default" {
		t.Fatalf("palette dusk = %+v", dusk)
	}
	if got := len(dusk.Definitions()); got != 2 {
		t.Errorf("dusk definitions = %d, want 2", got)
	}
	if got := dusk.VariantDefinitions()["night"]; len(got) != 1 || got[0].Value != "#806B00" {
		t.Errorf("night variant = %v", got)
	}

	brick := reg.Stamps["brick"]
	if brick == nil || brick.Glyph != 'B' || brick.Width() != 2 || brick.Height() != 2 {
		t.Fatalf("stamp brick = %+v", brick)
	}
	if brick.At(1, 1) != asset.TokenFill || brick.At(0, 1) != asset.TokenEdge {
		t.Error("stamp brick tokens")
	}

	if b := reg.Brushes["waves"]; b == nil || b.Sample(1, 0) != 'B' {
		t.Errorf("brush waves = %+v", b)
	}

	warm := reg.Shaders["warm"]
	if warm == nil || warm.Palette != "dusk" || warm.Variant != "night" || len(warm.Effects) != 2 {
		t.Fatalf("shader warm = %+v", warm)
	}
	if warm.Effects[0].Name != "vignette" || warm.Effects[0].Param("strength", 0) != 0.4 {
		t.Errorf("effect 0 = %+v", warm.Effects[0])
	}
	if warm.Effects[1].Param("gap", 0) != 3 {
		t.Errorf("integer parameter not converted: %+v", warm.Effects[1])
	}

	wall := reg.Shapes["wall"]
	if wall == nil {
		t.Fatal("shape wall missing")
	}
	if wall.Scale != 2 || len(wall.Tags) != 2 || wall.Grid.Width() != 4 || wall.Grid.Height() != 2 {
		t.Errorf("shape wall = %+v", wall)
	}
	fill := wall.Legend['~']
	if fill.Kind != asset.LegendFill || fill.Name != "checker" || fill.Bindings['A'] != "$gold" {
		t.Errorf("legend ~ = %+v", fill)
	}
	if e := wall.Legend['B']; e.Kind != asset.LegendStamp || e.Name != "brick" {
		t.Errorf("legend B = %+v", e)
	}
	if e := wall.Legend['w']; e.Kind != asset.LegendBrush || e.Name != "waves" || len(e.Bindings) != 0 {
		t.Errorf("legend w = %+v", e)
	}

	house := reg.Prefabs["house"]
	if house == nil || house.Kind != asset.KindPrefab || house.Legend['W'] != "wall" {
		t.Errorf("prefab house = %+v", house)
	}
	town := reg.Maps["town"]
	if town == nil || town.Kind != asset.KindMap || town.Legend['.'] != asset.EmptyRef {
		t.Errorf("map town = %+v", town)
	}

	game := reg.Targets["game"]
	if game == nil {
		t.Fatal("target game missing")
	}
	want := asset.Target{
		Name: "game", Format: asset.FormatPNG, Scale: 4,
		Sheet:   asset.Sheet{Kind: asset.SheetFixed, Width: 16, Height: 8},
		Padding: 1, PaletteMode: asset.PaletteIndexed, Shader: "warm",
	}
	if *game != want {
		t.Errorf("target game = %+v, want %+v", *game, want)
	}
	if cart := reg.Targets["cart"]; cart == nil || cart.Sheet.Kind != asset.SheetAuto || cart.Dither != "fs" {
		t.Errorf("target cart = %+v", cart)
	}
}

func TestDecodeShadowsBuiltins(t *testing.T) {
	reg, err := decode(t, "[brush.checker]\ngrid = \"AAB\"\n")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if reg.IsBuiltin(asset.NewID(asset.KindBrush, "checker")) {
		t.Error("user brush should shadow the builtin")
	}
	if reg.Brushes["checker"].Width() != 3 {
		t.Errorf("checker width = %d, want 3", reg.Brushes["checker"].Width())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
		want string
	}{
		{"syntax", "[shape.wall\n", errors.ErrCodeInvalidDocument, "test.toml"},
		{"unknown kind", "[sprite.hero]\ngrid = \"x\"\n", errors.ErrCodeInvalidDocument, `unknown asset kind "sprite"`},
		{"bad name", "[shape.\"a/b\"]\ngrid = \"+\"\n", errors.ErrCodeInvalidName, "shape 'a/b'"},
		{"ragged stamp", "[stamp.s]\ngrid = '''\n$$\n$\n'''\n", errors.ErrCodeInvalidDocument, "stamp 's'"},
		{"bad token", "[stamp.s]\ngrid = \"$q\"\n", errors.ErrCodeInvalidDocument, "unknown token"},
		{"long glyph", "[stamp.s]\nglyph = \"AB\"\ngrid = \"$\"\n", errors.ErrCodeInvalidDocument, "single character"},
		{"legend key", "[shape.s]\ngrid = \"+\"\nlegend = { ab = \"brick\" }\n", errors.ErrCodeInvalidDocument, "single character"},
		{"legend two kinds", "[shape.s]\ngrid = \"+\"\nlegend = { a = { stamp = \"x\", brush = \"y\" } }\n", errors.ErrCodeInvalidDocument, "exactly one"},
		{"stamp bindings", "[shape.s]\ngrid = \"+\"\nlegend = { a = { stamp = \"x\", bindings = { A = \"#fff\" } } }\n", errors.ErrCodeInvalidDocument, "no bindings"},
		{"legend number", "[shape.s]\ngrid = \"+\"\nlegend = { a = 3 }\n", errors.ErrCodeInvalidDocument, "unsupported legend value"},
		{"effect type", "[shader.s]\npalette = \"default\"\n[[shader.s.effects]]\nstrength = 1\n", errors.ErrCodeInvalidDocument, "missing effect type"},
		{"effect param", "[shader.s]\npalette = \"default\"\n[[shader.s.effects]]\ntype = \"vignette\"\nstrength = \"high\"\n", errors.ErrCodeInvalidDocument, "must be a number"},
		{"target format", "[target.t]\nformat = \"gif\"\n", errors.ErrCodeInvalidDocument, "unknown format"},
		{"target sheet", "[target.t]\nsheet = \"huge\"\n", errors.ErrCodeInvalidInput, "invalid sheet config"},
		{"target sheet type", "[target.t]\nsheet = 4\n", errors.ErrCodeInvalidDocument, "bool or a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.doc)
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDecodeCollectsAllErrors(t *testing.T) {
	doc := `
[stamp.a]
grid = "$q"

[stamp.b]
grid = "q$"

[brush.ok]
grid = "AB"
`
	reg, err := decode(t, doc)
	if got := len(errors.Flatten(err)); got != 2 {
		t.Fatalf("Decode() reported %d errors, want 2: %v", got, err)
	}
	if _, ok := reg.Brushes["ok"]; ok {
		t.Error("valid assets of a failed document must not be registered")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.toml"), "")
	writeFile(t, filepath.Join(dir, "a", "z.toml"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".cache", "old.toml"), "")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a", "z.toml"), filepath.Join(dir, "b.toml")}
	if len(files) != len(want) {
		t.Fatalf("Discover() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Discover()[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brushes.toml"), "[brush.waves]\ngrid = \"AB\"\n")
	writeFile(t, filepath.Join(dir, "shapes", "wall.toml"), "[shape.wall]\ngrid = \"+-+\"\n")
	extra := filepath.Join(t.TempDir(), "override.toml")
	writeFile(t, extra, "[brush.waves]\ngrid = \"ABC\"\n")

	reg, err := Load(dir, extra)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := reg.Shapes["wall"]; !ok {
		t.Error("shape from subdirectory not loaded")
	}
	if w := reg.Brushes["waves"].Width(); w != 3 {
		t.Errorf("later file should win: width = %d, want 3", w)
	}
	if !reg.IsBuiltin(asset.NewID(asset.KindStamp, "corner")) {
		t.Error("builtins missing")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v, want NOT_FOUND", err)
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.toml"), "[stamp.a]\ngrid = \"q\"\n")
	writeFile(t, filepath.Join(dir, "b.toml"), "[stamp.b\n")
	_, err := Load(dir)
	if got := len(errors.Flatten(err)); got != 2 {
		t.Errorf("Load() reported %d errors, want 2: %v", got, err)
	}
}
