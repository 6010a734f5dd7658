// Package sink encodes rendered images and their metadata into output files.
//
// # Overview
//
// A "sink" turns a [render.Image] (or packing/compositing metadata) into the
// bytes of a final artifact. This package provides encoders for:
//
//   - PNG: RGBA output with integer nearest-neighbour upscaling
//   - Indexed PNG: median-cut palette reduction with a transparent entry
//   - Atlas JSON: frame positions of a packed sprite sheet
//   - Metadata JSON: placement metadata of prefabs and maps
//   - Cartridge: PICO-8 cartridge text with a 128×128 __gfx__ section
//
// # PNG Output
//
// [RenderPNG] replicates every source pixel into an N×N block:
//
//	png, err := sink.RenderPNG(img, sink.WithScale(4))
//	png, err := sink.RenderPNG(img, sink.WithScale(2), sink.WithIndexed(16))
//
// # Sheet Atlases
//
// [RenderAtlasJSON] writes the widely supported hash-of-frames atlas layout.
// All coordinates are multiplied by the scale the sheet PNG was written
// with, so the atlas always matches the image it describes.
//
// # Cartridges
//
// [RenderCartridge] crops or transparent-pads the image to 128×128,
// quantizes it onto the PICO-8 palette and emits one lowercase hex digit per
// pixel.
//
// [render.Image]: github.com/matzehuels/pixelforge/pkg/render.Image
package sink
