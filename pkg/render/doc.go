// Package render turns shapes, prefabs and maps into pixel images.
//
// # Overview
//
// Rendering happens in two stages:
//
//   - [ShapeRenderer] turns one shape's character grid into an [Image], one
//     pixel per cell, through a layered glyph lookup.
//   - [Compositor] places already-rendered images onto a larger canvas per a
//     prefab or map grid, producing the image plus [Metadata] describing
//     where each piece was stamped.
//
// # Glyph Resolution
//
// Each shape cell is resolved by the first lookup that hits:
//
//  1. the shape's own legend entry (stamp, brush swatch or tiled fill)
//  2. a user stamp whose glyph matches the character
//  3. the builtin glyph table (+ - | # . x and space)
//  4. the missing colour, opaque magenta
//
// Rendering never fails on an unresolved glyph; the magenta placeholder makes
// the problem visible in the output and validation reports it.
//
// # Compositing
//
// All cells of a composite share one size: the elementwise maximum of every
// referenced piece. Smaller pieces sit flush top-left. [Blit] copies only
// pixels with non-zero alpha, so transparent areas never erase what is
// beneath them.
//
// # Related Packages
//
// The [sink] subpackage encodes images, atlases and cartridges. The
// [nodelink] subpackage draws the asset dependency graph.
//
// [sink]: github.com/matzehuels/pixelforge/pkg/render/sink
// [nodelink]: github.com/matzehuels/pixelforge/pkg/render/nodelink
package render
