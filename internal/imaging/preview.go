package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PreviewResult is a downscaled copy of a diagram encoded as a PNG data URI.
type PreviewResult struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	DataURI string `json:"data_uri"`
}

// Preview fits img inside maxWidth x maxHeight, preserving the aspect ratio.
//
// A zero bound leaves that dimension unconstrained. Images already within the
// bounds are encoded at their original size; Preview never upscales.
func Preview(img image.Image, maxWidth, maxHeight int) (*PreviewResult, error) {
	if maxWidth < 0 || maxHeight < 0 {
		return nil, fmt.Errorf("invalid preview bounds %dx%d", maxWidth, maxHeight)
	}

	bounds := img.Bounds()
	if maxWidth == 0 {
		maxWidth = bounds.Dx()
	}
	if maxHeight == 0 {
		maxHeight = bounds.Dy()
	}

	var thumb image.Image = img
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		thumb = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:   thumb.Bounds().Dx(),
		Height:  thumb.Bounds().Dy(),
		DataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
