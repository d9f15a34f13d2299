package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDataURI(t *testing.T, uri string) (int, int) {
	t.Helper()
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxW, maxH    int
		wantW, wantH  int
	}{
		{"fit width", 400, 200, 100, 0, 100, 50},
		{"fit height", 400, 200, 0, 50, 100, 50},
		{"fit both", 400, 400, 100, 50, 50, 50},
		{"no upscale", 40, 20, 100, 100, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Preview(fillImage(tt.width, tt.height, color.White), tt.maxW, tt.maxH)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, res.Width)
			assert.Equal(t, tt.wantH, res.Height)

			w, h := decodeDataURI(t, res.DataURI)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPreview_InvalidBounds(t *testing.T) {
	_, err := Preview(fillImage(4, 4, color.White), -1, 10)
	assert.Error(t, err)
}

func TestInspectDiagram(t *testing.T) {
	path := writePNG(t, t.TempDir(), "diagram.png", diagramImage(120, 80))
	cache := NewImageCache()

	info, err := InspectDiagram(cache, path, InspectOptions{PaletteSize: 2, PreviewWidth: 60})
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, 120, info.Width)
	assert.Equal(t, 80, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "#FFFFFF", info.Background)
	assert.Len(t, info.Palette, 2)
	require.NotNil(t, info.Preview)
	assert.Equal(t, 60, info.Preview.Width)
	assert.Equal(t, 40, info.Preview.Height)
	assert.Equal(t, 1, cache.Len())
}

func TestInspectDiagram_Defaults(t *testing.T) {
	path := writePNG(t, t.TempDir(), "plain.png", diagramImage(30, 30))

	info, err := InspectDiagram(NewImageCache(), path, InspectOptions{})
	require.NoError(t, err)
	assert.Nil(t, info.Preview)
	assert.LessOrEqual(t, len(info.Palette), DefaultPaletteSize)
}

func TestInspectDiagram_RejectsSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.svg")
	require.NoError(t, os.WriteFile(path, []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>"), 0o644))

	_, err := InspectDiagram(NewImageCache(), path, InspectOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestInspectDiagram_RegionPreview(t *testing.T) {
	path := writePNG(t, t.TempDir(), "region.png", diagramImage(120, 80))

	info, err := InspectDiagram(NewImageCache(), path, InspectOptions{Region: "top-left"})
	require.NoError(t, err)
	require.NotNil(t, info.Preview)
	assert.Equal(t, 60, info.Preview.Width)
	assert.Equal(t, 40, info.Preview.Height)
	assert.Equal(t, 120, info.Width, "dimensions describe the whole diagram")

	_, err = InspectDiagram(NewImageCache(), path, InspectOptions{Region: "middle"})
	assert.EqualError(t, err, "unknown region: middle")
}
