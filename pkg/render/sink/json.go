package sink

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/pixelforge/pkg/buildinfo"
	"github.com/matzehuels/pixelforge/pkg/render"
	"github.com/matzehuels/pixelforge/pkg/sheet"
)

// DefaultSheetImage is the image file name recorded in atlases.
const DefaultSheetImage = "sheet.png"

// AtlasOption configures atlas rendering via [RenderAtlasJSON].
type AtlasOption func(*atlasRenderer)

type atlasRenderer struct {
	image string
	scale int
}

// WithAtlasImage sets the sheet image file name (default "sheet.png").
func WithAtlasImage(name string) AtlasOption { return func(r *atlasRenderer) { r.image = name } }

// WithAtlasScale sets the scale the sheet image was written with. Every
// coordinate and size is multiplied by it.
func WithAtlasScale(s int) AtlasOption { return func(r *atlasRenderer) { r.scale = max(s, 1) } }

type atlasOutput struct {
	Frames map[string]atlasFrame `json:"frames"`
	Meta   atlasMeta             `json:"meta"`
}

type atlasFrame struct {
	Frame            atlasRect `json:"frame"`
	Rotated          bool      `json:"rotated"`
	Trimmed          bool      `json:"trimmed"`
	SpriteSourceSize atlasRect `json:"spriteSourceSize"`
	SourceSize       atlasSize `json:"sourceSize"`
}

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type atlasMeta struct {
	App     string    `json:"app"`
	Version string    `json:"version"`
	Image   string    `json:"image"`
	Size    atlasSize `json:"size"`
	Scale   string    `json:"scale"`
}

// RenderAtlasJSON describes a packed sheet of width×height pixels as a
// pretty-printed frame atlas. Frames are keyed by name; a later frame with
// the same name replaces an earlier one.
func RenderAtlasJSON(frames []sheet.Frame, width, height int, opts ...AtlasOption) ([]byte, error) {
	r := atlasRenderer{image: DefaultSheetImage, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	s := r.scale

	out := atlasOutput{
		Frames: make(map[string]atlasFrame, len(frames)),
		Meta: atlasMeta{
			App:     buildinfo.App,
			Version: buildinfo.AtlasVersion(),
			Image:   r.image,
			Size:    atlasSize{W: width * s, H: height * s},
			Scale:   strconv.Itoa(s),
		},
	}
	for _, f := range frames {
		out.Frames[f.Name] = atlasFrame{
			Frame:            atlasRect{X: f.X * s, Y: f.Y * s, W: f.W * s, H: f.H * s},
			SpriteSourceSize: atlasRect{W: f.W * s, H: f.H * s},
			SourceSize:       atlasSize{W: f.W * s, H: f.H * s},
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// RenderMetadataJSON exports prefab or map placement metadata as
// pretty-printed JSON.
func RenderMetadataJSON(meta render.Metadata) ([]byte, error) {
	return json.MarshalIndent(meta, "", "  ")
}

type shapeOutput struct {
	Name string   `json:"name"`
	Size [2]int   `json:"size"`
	Tags []string `json:"tags"`
}

// RenderShapeJSON describes a rendered shape: its name, size and tags.
func RenderShapeJSON(img *render.Image) ([]byte, error) {
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.MarshalIndent(shapeOutput{
		Name: img.Name,
		Size: [2]int{img.Width, img.Height},
		Tags: tags,
	}, "", "  ")
}
