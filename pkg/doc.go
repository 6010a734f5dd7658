// Package pkg provides the core libraries of pixelforge, a compiler for
// pixel art described as text.
//
// # Overview
//
// pixelforge turns palettes, stamps, brushes, shapes, prefabs and maps
// written in TOML into PNG images, packed sprite sheets and PICO-8
// cartridges. The pkg directory is organized into four main areas:
//
//  1. Documents - [asset], [project] and [validate]
//  2. Colour - [colour] expressions and [palette] resolution
//  3. Rendering - [render], [effect], [sheet] and [quantize]
//  4. Orchestration - [dag] scheduling and the [pipeline] runner
//
// # Architecture
//
// The typical data flow of a build:
//
//	TOML project files
//	         ↓
//	    [project] package (decode into an asset registry)
//	         ↓
//	    [dag] package (dependency graph, build waves)
//	         ↓
//	    [pipeline] package (resolve palettes, render wave by wave)
//	         ↓
//	    [render/sink] package (PNG, sheet atlas JSON, .p8 cartridge)
//
// # Quick Start
//
// Load a project and build it for the web target:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pixelforge/pkg/pipeline"
//	    "github.com/matzehuels/pixelforge/pkg/project"
//	)
//
//	// 1. Load every *.toml file below ./art
//	reg, _ := project.Load("art")
//
//	// 2. Build; artifacts are keyed by file name
//	result, err := pipeline.NewRunner(nil, 0).Build(context.Background(), reg, pipeline.Options{})
//
//	// 3. Write result.Artifacts to disk
//
// # Main Packages
//
// ## Documents
//
// [asset] - The typed asset kinds, the builtin stamps, brushes, shaders and
// targets, and the [asset.Registry] holding one build's assets.
//
// [project] - TOML decoding. A document is staged and only registered when
// every asset in it is valid.
//
// [validate] - Static checks producing diagnostics with help text, run
// without rendering.
//
// ## Colour
//
// [colour] - Colour literals and the expression language: hex, named
// references and functions such as lighten, darken and mix.
//
// [palette] - Palette builders, inheritance, variants and cycle detection.
//
// ## Rendering
//
// [render] - The glyph-chain shape renderer and the prefab/map compositor.
//
//   - [render/sink]: Output encoders (PNG, atlas JSON, metadata, cartridge)
//   - [render/nodelink]: Dependency graph diagrams (DOT, SVG)
//
// [effect] - Post-render shader effects.
//
// [sheet] - Shelf packing of rendered images into one sheet.
//
// [quantize] - Reduction to the PICO-8 palette with optional dithering.
//
// ## Orchestration
//
// [dag] - The asset dependency graph: build order, waves and cycles.
//
// [pipeline] - Concurrent wave-by-wave builds with per-asset failure
// isolation.
//
// [observability] - Hooks for build and preview server events.
//
// [asset]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/asset
// [project]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/project
// [validate]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/validate
// [colour]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/colour
// [palette]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/palette
// [render]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/render/nodelink
// [effect]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/effect
// [sheet]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/sheet
// [quantize]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/quantize
// [dag]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/dag
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/pixelforge/pkg/observability
package pkg
