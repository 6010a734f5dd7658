package render

import (
	"maps"
	"slices"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Placement lists every top-left pixel coordinate at which one piece was
// stamped into a composite.
type Placement struct {
	Name      string   `json:"name"`
	Tags      []string `json:"tags"`
	Positions [][2]int `json:"positions"`
}

// Metadata describes a rendered prefab or map.
type Metadata struct {
	Name     string      `json:"name"`
	Size     [2]int      `json:"size"`
	Tags     []string    `json:"tags,omitempty"`
	Grid     [2]int      `json:"grid"`
	CellSize [2]int      `json:"cell_size"`
	Shapes   []Placement `json:"shapes"`
}

// Lookup returns an already-rendered piece by name.
type Lookup func(name string) (*Image, bool)

// Compositor renders prefabs and maps from pieces rendered earlier.
type Compositor struct {
	// Rendered resolves legend references. Every referenced piece must be
	// available; callers render in dependency order.
	Rendered Lookup
}

// MapLookup adapts a map to a [Lookup].
func MapLookup(m map[string]*Image) Lookup {
	return func(name string) (*Image, bool) {
		img, ok := m[name]
		return img, ok
	}
}

// Render composites c. Cells hold the elementwise maximum size of every
// referenced piece; the canvas is grid×cell. Spaces are always skipped, as
// are glyphs without a legend entry and, for maps, the "empty" reference.
//
// A referenced piece that Rendered cannot supply fails with
// MISSING_REFERENCE naming the owner, the glyph and the missing name.
func (cp *Compositor) Render(c *asset.Composite) (*Image, Metadata, error) {
	meta := Metadata{
		Name:   c.Name,
		Tags:   slices.Clone(c.Tags),
		Shapes: []Placement{},
	}

	if c.Grid.IsEmpty() {
		img := NewImage(c.Name, 1, 1)
		img.Tags = slices.Clone(c.Tags)
		meta.Size = [2]int{1, 1}
		meta.CellSize = [2]int{1, 1}
		return img, meta, nil
	}

	cellW, cellH := 1, 1
	for _, glyph := range c.LegendGlyphs() {
		ref := c.Legend[glyph]
		if skipRef(c, ref) {
			continue
		}
		piece, err := cp.piece(c, glyph, ref)
		if err != nil {
			return nil, Metadata{}, err
		}
		cellW = max(cellW, piece.Width)
		cellH = max(cellH, piece.Height)
	}

	gw, gh := c.Grid.Width(), c.Grid.Height()
	img := NewImage(c.Name, gw*cellW, gh*cellH)
	img.Tags = slices.Clone(c.Tags)

	placed := make(map[string]*Placement)
	for cy := 0; cy < gh; cy++ {
		for cx := 0; cx < gw; cx++ {
			glyph := c.Grid.At(cx, cy)
			if glyph == ' ' {
				continue
			}
			ref, ok := c.Legend[glyph]
			if !ok || skipRef(c, ref) {
				continue
			}
			piece, err := cp.piece(c, glyph, ref)
			if err != nil {
				return nil, Metadata{}, err
			}

			dx, dy := cx*cellW, cy*cellH
			Blit(img, piece, dx, dy)

			p, ok := placed[ref]
			if !ok {
				p = &Placement{Name: ref, Tags: slices.Clone(piece.Tags)}
				if p.Tags == nil {
					p.Tags = []string{}
				}
				placed[ref] = p
			}
			p.Positions = append(p.Positions, [2]int{dx, dy})
		}
	}

	for _, name := range slices.Sorted(maps.Keys(placed)) {
		meta.Shapes = append(meta.Shapes, *placed[name])
	}
	meta.Size = [2]int{img.Width, img.Height}
	meta.Grid = [2]int{gw, gh}
	meta.CellSize = [2]int{cellW, cellH}
	return img, meta, nil
}

func (cp *Compositor) piece(c *asset.Composite, glyph rune, ref string) (*Image, error) {
	if cp.Rendered != nil {
		if img, ok := cp.Rendered(ref); ok {
			return img, nil
		}
	}
	return nil, errors.New(errors.ErrCodeMissingReference,
		"%s '%s': legend glyph '%c' references '%s' which has not been rendered",
		c.Kind, c.Name, glyph, ref)
}

func skipRef(c *asset.Composite, ref string) bool {
	return c.Kind == asset.KindMap && ref == asset.EmptyRef
}

// Blit copies src onto dst with its top-left corner at (x, y). Only source
// pixels with non-zero alpha are copied; pixels falling outside dst are
// clipped.
func Blit(dst, src *Image, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.Width {
				continue
			}
			if p := src.Pix[sy*src.Width+sx]; p.A > 0 {
				dst.Pix[dy*dst.Width+dx] = p
			}
		}
	}
}
