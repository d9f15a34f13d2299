package ocr

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// upscaleBelow is the width under which diagrams are enlarged before OCR.
const upscaleBelow = 1600

// contrastBoost is the relative contrast change applied after grayscale.
const contrastBoost = 0.4

// Preprocess prepares a diagram for Tesseract and returns the processed image
// together with the integer factor it was enlarged by (1 when unchanged).
// The returned image starts at (0,0).
func Preprocess(img image.Image) (image.Image, int) {
	scale := 1
	var out image.Image = img
	if w := img.Bounds().Dx(); w > 0 && w < upscaleBelow {
		scale = 2
		out = imaging.Resize(img, w*scale, img.Bounds().Dy()*scale, imaging.Lanczos)
	}

	out = effect.Grayscale(out)
	out = adjust.Contrast(out, contrastBoost)
	return out, scale
}
