package render

import (
	"testing"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

func solid(name string, w, h int, c colour.Colour) *Image {
	img := NewImage(name, w, h)
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

func TestBlitTransparentSourceLeavesDestination(t *testing.T) {
	dst := NewImage("dst", 4, 4)
	for i := range dst.Pix {
		dst.Pix[i] = colour.Colour{R: uint8(i * 10), G: 3, B: 7, A: uint8(100 + i)}
	}
	before := dst.Clone()

	Blit(dst, NewImage("clear", 3, 3), 1, 1)

	for i := range dst.Pix {
		if dst.Pix[i] != before.Pix[i] {
			t.Fatalf("pixel %d changed: %v -> %v", i, before.Pix[i], dst.Pix[i])
		}
	}
}

func TestBlitClipsAndSkipsTransparent(t *testing.T) {
	dst := solid("dst", 2, 2, colour.White)
	src := NewImage("src", 2, 2)
	src.Set(0, 0, colour.Black)
	src.Set(1, 1, colour.Black)

	Blit(dst, src, 1, 1)
	assertPixels(t, dst, [][]colour.Colour{
		{colour.White, colour.White},
		{colour.White, colour.Black},
	})

	Blit(dst, src, -1, -1)
	assertPixels(t, dst, [][]colour.Colour{
		{colour.Black, colour.White},
		{colour.White, colour.Black},
	})
}

func TestCompositorPrefab(t *testing.T) {
	red, blue := colour.RGB(255, 0, 0), colour.RGB(0, 0, 255)
	pieces := map[string]*Image{
		"big":   solid("big", 2, 2, red),
		"small": solid("small", 1, 1, blue),
	}
	pieces["big"].Tags = []string{"wall"}

	c := &asset.Composite{
		Kind:   asset.KindPrefab,
		Name:   "room",
		Tags:   []string{"interior"},
		Grid:   asset.NewGrid([]string{"BS", "?B"}),
		Legend: map[rune]string{'B': "big", 'S': "small"},
	}

	img, meta, err := (&Compositor{Rendered: MapLookup(pieces)}).Render(c)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	tr := colour.Transparent
	assertPixels(t, img, [][]colour.Colour{
		{red, red, blue, tr},
		{red, red, tr, tr},
		{tr, tr, red, red},
		{tr, tr, red, red},
	})

	if meta.CellSize != [2]int{2, 2} || meta.Grid != [2]int{2, 2} || meta.Size != [2]int{4, 4} {
		t.Errorf("meta sizes = %v %v %v", meta.CellSize, meta.Grid, meta.Size)
	}
	if len(meta.Tags) != 1 || meta.Tags[0] != "interior" {
		t.Errorf("meta.Tags = %v", meta.Tags)
	}
	if len(meta.Shapes) != 2 || meta.Shapes[0].Name != "big" || meta.Shapes[1].Name != "small" {
		t.Fatalf("meta.Shapes = %+v", meta.Shapes)
	}
	big := meta.Shapes[0]
	if len(big.Positions) != 2 || big.Positions[0] != [2]int{0, 0} || big.Positions[1] != [2]int{2, 2} {
		t.Errorf("big positions = %v", big.Positions)
	}
	if len(big.Tags) != 1 || big.Tags[0] != "wall" {
		t.Errorf("big tags = %v", big.Tags)
	}
}

func TestCompositorMapSkipsEmpty(t *testing.T) {
	pieces := map[string]*Image{"tile": solid("tile", 1, 1, colour.Black)}
	c := &asset.Composite{
		Kind:   asset.KindMap,
		Name:   "level",
		Grid:   asset.NewGrid([]string{"T.", " T"}),
		Legend: map[rune]string{'T': "tile", '.': asset.EmptyRef},
	}

	img, meta, err := (&Compositor{Rendered: MapLookup(pieces)}).Render(c)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if img.Opaque() != 2 {
		t.Errorf("Opaque() = %d, want 2", img.Opaque())
	}
	if len(meta.Shapes) != 1 || meta.Shapes[0].Name != "tile" {
		t.Errorf("meta.Shapes = %+v", meta.Shapes)
	}
}

func TestCompositorMissingReference(t *testing.T) {
	c := &asset.Composite{
		Kind:   asset.KindPrefab,
		Name:   "room",
		Grid:   asset.NewGrid([]string{"W"}),
		Legend: map[rune]string{'W': "wall"},
	}
	_, _, err := (&Compositor{Rendered: MapLookup(nil)}).Render(c)
	if !errors.Is(err, errors.ErrCodeMissingReference) {
		t.Fatalf("Render() error = %v, want MISSING_REFERENCE", err)
	}
	want := "prefab 'room': legend glyph 'W' references 'wall' which has not been rendered"
	if errors.UserMessage(err) != want {
		t.Errorf("message = %q, want %q", errors.UserMessage(err), want)
	}
}

func TestCompositorEmptyGrid(t *testing.T) {
	c := &asset.Composite{Kind: asset.KindMap, Name: "void", Grid: asset.NewGrid(nil)}
	img, meta, err := (&Compositor{}).Render(c)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 1 || img.Height != 1 || img.Opaque() != 0 {
		t.Errorf("image = %dx%d with %d opaque", img.Width, img.Height, img.Opaque())
	}
	if len(meta.Shapes) != 0 || meta.Size != [2]int{1, 1} {
		t.Errorf("meta = %+v", meta)
	}
}

func TestCompositorNested(t *testing.T) {
	r := newRenderer(t, nil, "")
	pieces := map[string]*Image{}
	pieces["wall"] = r.Render(&asset.Shape{Name: "wall", Grid: asset.NewGrid([]string{"##"})})

	cp := &Compositor{Rendered: MapLookup(pieces)}
	house, _, err := cp.Render(&asset.Composite{
		Kind: asset.KindPrefab, Name: "house",
		Grid:   asset.NewGrid([]string{"W", "W"}),
		Legend: map[rune]string{'W': "wall"},
	})
	if err != nil {
		t.Fatal(err)
	}
	pieces["house"] = house

	street, meta, err := cp.Render(&asset.Composite{
		Kind: asset.KindMap, Name: "street",
		Grid:   asset.NewGrid([]string{"HH"}),
		Legend: map[rune]string{'H': "house"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if street.Width != 4 || street.Height != 2 || street.Opaque() != 8 {
		t.Errorf("street = %dx%d, %d opaque", street.Width, street.Height, street.Opaque())
	}
	if meta.Shapes[0].Positions[1] != [2]int{2, 0} {
		t.Errorf("second house at %v", meta.Shapes[0].Positions[1])
	}
}
