// Package pipeline builds every asset of a registry into output artifacts.
//
// A build resolves the active target, shader and palette, orders the asset
// graph into waves of mutually independent assets and renders each wave
// concurrently. Rendered shapes, prefabs and maps are published into a
// write-once [Store] that later waves read from. Finally the images are
// encoded according to the target: one PNG and JSON file per asset, a packed
// sheet with a frame atlas, or a PICO-8 cartridge.
//
// # Usage
//
//	reg, err := project.Load("assets/")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(logger, 0)
//	result, err := runner.Build(ctx, reg, pipeline.Options{Target: "sheet"})
//	for name, data := range result.Artifacts {
//	    // write data to name
//	}
//
// A failed asset does not stop the build: its dependents are skipped, every
// independent asset is still built and the failures are returned joined.
package pipeline

import (
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/quantize"
	"github.com/matzehuels/pixelforge/pkg/render"
	"github.com/matzehuels/pixelforge/pkg/sheet"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTarget is the target used when none is named.
	DefaultTarget = "web"

	// DefaultIndexedColours is the palette size of indexed PNG output.
	DefaultIndexedColours = 256

	// DefaultFixedSheet is the sheet size of p8 targets that do not set one.
	DefaultFixedSheet = 128
)

// Artifact names of packed output.
const (
	SheetImage     = "sheet.png"
	SheetAtlas     = "sheet.json"
	CartridgeImage = "cart.p8"
)

// =============================================================================
// Options - Build Configuration
// =============================================================================

// Options overrides the target profile for one build. Zero values, and a nil
// Padding, keep the target's setting.
type Options struct {
	// Target names the output profile (default [DefaultTarget]).
	Target string
	// Shader replaces the target's shader.
	Shader string
	// Scale replaces the target's and every asset's upscale factor.
	Scale int
	// Padding replaces the target's sheet padding when non-nil, so an
	// explicit zero removes the target's padding.
	Padding *int
	// Sheet replaces the target's sheet mode: none, auto or WxH.
	Sheet string
	// Dither replaces the target's dithering method for p8 output.
	Dither string
}

// settings is the effective configuration of one build.
type settings struct {
	target  *asset.Target
	shader  string
	scale   int // 0 when neither options nor target set one
	padding int
	sheet   asset.Sheet
	dither  quantize.Dither
}

// resolve layers opts over the named target.
func (opts Options) resolve(reg *asset.Registry) (settings, error) {
	name := opts.Target
	if name == "" {
		name = DefaultTarget
	}
	t, ok := reg.Targets[name]
	if !ok {
		return settings{}, errors.New(errors.ErrCodeNotFound, "target %q not found", name)
	}
	if opts.Scale < 0 || (opts.Padding != nil && *opts.Padding < 0) {
		return settings{}, errors.New(errors.ErrCodeInvalidInput, "scale and padding must not be negative")
	}

	s := settings{
		target:  t,
		shader:  firstNonEmpty(opts.Shader, t.Shader, asset.DefaultShaderName),
		scale:   t.Scale,
		padding: t.Padding,
		sheet:   t.Sheet,
	}
	if opts.Scale > 0 {
		s.scale = opts.Scale
	}
	if opts.Padding != nil {
		s.padding = *opts.Padding
	}
	if opts.Sheet != "" {
		sh, err := asset.ParseSheet(opts.Sheet)
		if err != nil {
			return settings{}, err
		}
		s.sheet = sh
	}
	d, err := quantize.ParseDither(firstNonEmpty(opts.Dither, t.Dither))
	if err != nil {
		return settings{}, err
	}
	s.dither = d
	return s, nil
}

// scaleFor applies the precedence options > target > asset > 1.
func (s settings) scaleFor(assetScale int) int {
	switch {
	case s.scale > 0:
		return s.scale
	case assetScale > 0:
		return assetScale
	}
	return 1
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// Result - Build Output
// =============================================================================

// Result holds everything a build produced.
type Result struct {
	// BuildID identifies the build in logs and hooks.
	BuildID string
	Target  *asset.Target
	Shader  *asset.Shader

	// Order is the build order, wave by wave.
	Order []asset.ID
	// Images holds the rendered shapes, prefabs and maps in build order.
	Images []Rendered
	// Metadata holds placement metadata of prefabs and maps.
	Metadata map[asset.ID]render.Metadata

	// Frames locates each packed image on the sheet; Overflow lists images
	// that did not fit a fixed sheet.
	Frames   []sheet.Frame
	Overflow []sheet.Frame

	// Artifacts maps output file names to their contents.
	Artifacts map[string][]byte

	// Failed and Skipped list assets that could not be built, the latter
	// because a dependency failed.
	Failed  []asset.ID
	Skipped []asset.ID

	Stats Stats
}

// Rendered is one rendered shape, prefab or map.
type Rendered struct {
	ID    asset.ID
	Image *render.Image
}

// Image returns the rendered image of the named asset.
func (r *Result) Image(kind asset.Kind, name string) (*render.Image, bool) {
	for _, img := range r.Images {
		if img.ID.Kind == kind && img.ID.Name == name {
			return img.Image, true
		}
	}
	return nil, false
}

// Stats contains build metrics.
type Stats struct {
	Assets   int
	Rendered int
	Duration time.Duration
}

// ArtifactNames returns the artifact names in sorted order.
func (r *Result) ArtifactNames() []string {
	return slices.Sorted(maps.Keys(r.Artifacts))
}

func (r *Result) logSummary(logger *log.Logger) {
	logger.Info("build finished",
		"assets", r.Stats.Assets,
		"rendered", r.Stats.Rendered,
		"failed", len(r.Failed),
		"skipped", len(r.Skipped),
		"artifacts", len(r.Artifacts),
		"duration", r.Stats.Duration)
}
