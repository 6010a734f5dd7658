package pipeline

import (
	"fmt"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
	"github.com/matzehuels/pixelforge/pkg/render/sink"
	"github.com/matzehuels/pixelforge/pkg/sheet"
)

// encode turns the rendered images into artifacts: a cartridge for p8
// targets, a packed sheet when the target packs, and one PNG plus JSON per
// asset otherwise.
func (b *build) encode(result *Result) {
	switch {
	case b.cfg.target.Format == asset.FormatP8:
		b.encodeCartridge(result)
	case b.cfg.sheet.Kind != asset.SheetNone:
		b.encodeSheet(result)
	default:
		b.encodeEach(result)
	}
}

func (b *build) encodeEach(result *Result) {
	used := make(map[string]bool)
	for _, r := range result.Images {
		base := r.ID.Name
		if used[base] {
			base = fmt.Sprintf("%s.%s", r.ID.Name, r.ID.Kind)
		}
		used[base] = true

		data, err := sink.RenderPNG(r.Image, b.pngOptions(b.cfg.scaleFor(b.assetScale(r.ID)))...)
		if err != nil {
			b.status.report(errors.Wrap(errors.GetCode(err), err, "encode %s", r.ID))
			continue
		}
		result.Artifacts[base+".png"] = data

		var meta []byte
		if m, ok := result.Metadata[r.ID]; ok {
			meta, err = sink.RenderMetadataJSON(m)
		} else {
			meta, err = sink.RenderShapeJSON(r.Image)
		}
		if err != nil {
			b.status.report(errors.Wrap(errors.ErrCodeInternal, err, "encode %s metadata", r.ID))
			continue
		}
		result.Artifacts[base+".json"] = meta
	}
}

func (b *build) encodeSheet(result *Result) {
	images := sheetImages(result.Images)
	if len(images) == 0 {
		b.logger.Warn("nothing to pack")
		return
	}

	var packed *render.Image
	switch b.cfg.sheet.Kind {
	case asset.SheetFixed:
		packed, result.Frames, result.Overflow = sheet.Fixed(images, b.cfg.padding, b.cfg.sheet.Width, b.cfg.sheet.Height)
		b.warnOverflow(result.Overflow)
	default:
		packed, result.Frames = sheet.Pack(images, b.cfg.padding)
	}

	scale := b.cfg.scaleFor(0)
	data, err := sink.RenderPNG(packed, b.pngOptions(scale)...)
	if err != nil {
		b.status.report(errors.Wrap(errors.GetCode(err), err, "encode sheet"))
		return
	}
	atlas, err := sink.RenderAtlasJSON(result.Frames, packed.Width, packed.Height,
		sink.WithAtlasImage(SheetImage), sink.WithAtlasScale(scale))
	if err != nil {
		b.status.report(errors.Wrap(errors.ErrCodeInternal, err, "encode sheet atlas"))
		return
	}
	result.Artifacts[SheetImage] = data
	result.Artifacts[SheetAtlas] = atlas
	b.logger.Info("packed sheet", "sprites", len(result.Frames), "size", [2]int{packed.Width, packed.Height})
}

func (b *build) encodeCartridge(result *Result) {
	w, h := DefaultFixedSheet, DefaultFixedSheet
	if b.cfg.sheet.Kind == asset.SheetFixed {
		w, h = b.cfg.sheet.Width, b.cfg.sheet.Height
	}
	packed, fit, overflow := sheet.Fixed(sheetImages(result.Images), b.cfg.padding, w, h)
	result.Frames, result.Overflow = fit, overflow
	b.warnOverflow(overflow)

	result.Artifacts[CartridgeImage] = sink.RenderCartridge(packed, sink.WithDither(b.cfg.dither))
	b.logger.Info("wrote cartridge", "sprites", len(fit), "dither", b.cfg.dither)
}

func (b *build) warnOverflow(overflow []sheet.Frame) {
	for _, f := range overflow {
		b.logger.Warn("sprite does not fit the sheet", "sprite", f.Name, "at", [2]int{f.X, f.Y}, "size", [2]int{f.W, f.H})
	}
}

func (b *build) pngOptions(scale int) []sink.PNGOption {
	opts := []sink.PNGOption{sink.WithScale(scale)}
	if b.cfg.target.PaletteMode == asset.PaletteIndexed {
		opts = append(opts, sink.WithIndexed(DefaultIndexedColours))
	}
	return opts
}

func (b *build) assetScale(id asset.ID) int {
	switch id.Kind {
	case asset.KindShape:
		return b.reg.Shapes[id.Name].Scale
	case asset.KindPrefab, asset.KindMap:
		if c, ok := b.reg.Composite(id); ok {
			return c.Scale
		}
	}
	return 0
}

// sheetImages returns the packable images: shapes and prefabs. Maps are
// whole levels and never packed.
func sheetImages(rendered []Rendered) []*render.Image {
	var out []*render.Image
	for _, r := range rendered {
		if r.ID.Kind != asset.KindMap {
			out = append(out, r.Image)
		}
	}
	return out
}
