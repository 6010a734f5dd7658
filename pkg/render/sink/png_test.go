package sink

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/matzehuels/pixelforge/pkg/colour"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
)

func checkerImage() *render.Image {
	img := render.NewImage("checker", 2, 2)
	img.Set(0, 0, colour.Black)
	img.Set(1, 0, colour.White)
	img.Set(0, 1, colour.RGB(255, 0, 0))
	return img
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	m, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return m
}

func TestRenderPNG(t *testing.T) {
	src := checkerImage()
	data, err := RenderPNG(src)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	m := decode(t, data)
	if b := m.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", b)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := colour.FromColor(m.At(x, y)); got != src.At(x, y) {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, src.At(x, y))
			}
		}
	}
}

func TestRenderPNGScaled(t *testing.T) {
	src := checkerImage()
	data, err := RenderPNG(src, WithScale(3))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	m := decode(t, data)
	if b := m.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := src.At(x/3, y/3)
			if got := colour.FromColor(m.At(x, y)); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderPNGIndexed(t *testing.T) {
	data, err := RenderPNG(checkerImage(), WithScale(2), WithIndexed(8))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	pm, ok := decode(t, data).(*image.Paletted)
	if !ok {
		t.Fatalf("decoded image is not paletted")
	}
	if len(pm.Palette) > 8 {
		t.Errorf("palette size = %d, want <= 8", len(pm.Palette))
	}
	if _, _, _, a := pm.Palette[0].RGBA(); a != 0 {
		t.Errorf("palette[0] alpha = %d, want 0", a)
	}
	if _, _, _, a := pm.At(3, 3).RGBA(); a != 0 {
		t.Errorf("transparent pixel decoded with alpha %d", a)
	}
}

func TestRenderPNGEmpty(t *testing.T) {
	_, err := RenderPNG(render.NewImage("void", 0, 0))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG() error = %v, want INVALID_INPUT", err)
	}
}

func TestUpscaleIdentity(t *testing.T) {
	src := checkerImage().NRGBA()
	if Upscale(src, 1) != src || Upscale(src, 0) != src {
		t.Error("Upscale() with scale <= 1 should return the source")
	}
}
