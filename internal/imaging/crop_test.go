package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropRegion(t *testing.T) {
	img := fillImage(100, 60, color.White)

	tests := []struct {
		region string
		want   image.Rectangle
	}{
		{"top-left", image.Rect(0, 0, 50, 30)},
		{"top-right", image.Rect(0, 0, 50, 30)},
		{"bottom-half", image.Rect(0, 0, 100, 30)},
		{"right-half", image.Rect(0, 0, 50, 60)},
		{"center", image.Rect(0, 0, 50, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := CropRegion(img, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Bounds())
		})
	}
}

func TestCropRegion_PicksTheRightPixels(t *testing.T) {
	img := fillImage(10, 10, color.White)
	img.Set(9, 9, color.Black)

	got, err := CropRegion(img, "bottom-right")
	require.NoError(t, err)
	r, g, b, _ := got.At(4, 4).RGBA()
	assert.Zero(t, r+g+b)
}

func TestCropRegion_Errors(t *testing.T) {
	img := fillImage(1, 1, color.White)

	same, err := CropRegion(img, "")
	require.NoError(t, err)
	assert.Same(t, img, same)

	_, err = CropRegion(img, "north")
	assert.EqualError(t, err, "unknown region: north")

	_, err = CropRegion(img, "top-left")
	assert.Error(t, err, "half of a 1x1 image is empty")
}

func TestRegionNames(t *testing.T) {
	names := RegionNames()
	assert.Len(t, names, 9)
	assert.Equal(t, "bottom-half", names[0])
	assert.Contains(t, names, "center")
}
