package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocess_UpscalesNarrowImages(t *testing.T) {
	out, scale := Preprocess(solid(200, 100, color.White))

	assert.Equal(t, 2, scale)
	assert.Equal(t, 400, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
	assert.Equal(t, image.Point{}, out.Bounds().Min)
}

func TestPreprocess_KeepsWideImages(t *testing.T) {
	out, scale := Preprocess(solid(upscaleBelow, 10, color.White))

	assert.Equal(t, 1, scale)
	assert.Equal(t, upscaleBelow, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
}

func TestPreprocess_Grayscale(t *testing.T) {
	out, _ := Preprocess(solid(8, 8, color.NRGBA{R: 0xFE, G: 0xFE, B: 0xCE, A: 255}))

	r, g, b, _ := out.At(4, 4).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestUnscale(t *testing.T) {
	tests := []struct {
		name   string
		rect   image.Rectangle
		scale  int
		origin image.Point
		want   Bounds
	}{
		{"identity", image.Rect(3, 4, 10, 12), 1, image.Point{}, Bounds{3, 4, 10, 12}},
		{"doubled", image.Rect(10, 20, 31, 41), 2, image.Point{}, Bounds{5, 10, 16, 21}},
		{"offset origin", image.Rect(0, 0, 4, 4), 2, image.Pt(5, 7), Bounds{5, 7, 7, 9}},
		{"zero scale treated as one", image.Rect(1, 1, 2, 2), 0, image.Point{}, Bounds{1, 1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unscale(tt.rect, tt.scale, tt.origin))
		})
	}
}
