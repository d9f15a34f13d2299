package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion is one recognized word with its location and confidence.
type TextRegion struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds locates the word in the original (unprocessed) image.
	Bounds Bounds `json:"bounds"`
}

// OCRResult contains the text recognized in a diagram.
type OCRResult struct {
	// FullText is all recognized text with Tesseract's line breaks, trimmed.
	FullText string `json:"full_text"`

	// Regions lists individual words. It is empty, not nil, when bounding
	// boxes are unavailable; FullText is still populated in that case.
	Regions []TextRegion `json:"regions"`
}

// ExtractText runs Tesseract over img and returns the recognized text.
//
// Parameters:
//   - img: The decoded diagram.
//   - language: Tesseract language code. Empty means DefaultLanguage. The
//     language data must be installed.
//
// Returns:
//   - *OCRResult: FullText plus word-level regions in img's coordinates.
//   - error: Non-nil if the image cannot be encoded or Tesseract fails.
func ExtractText(img image.Image, language string) (*OCRResult, error) {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	prepared, scale := Preprocess(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &OCRResult{
		FullText: strings.TrimSpace(text),
		Regions:  []TextRegion{},
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	origin := img.Bounds().Min
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		result.Regions = append(result.Regions, TextRegion{
			Text:       word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     unscale(box.Box, scale, origin),
		})
	}
	return result, nil
}

// unscale maps a rectangle found in the preprocessed image back onto the
// original image.
func unscale(r image.Rectangle, scale int, origin image.Point) Bounds {
	if scale < 1 {
		scale = 1
	}
	return Bounds{
		X1: r.Min.X/scale + origin.X,
		Y1: r.Min.Y/scale + origin.Y,
		X2: (r.Max.X+scale-1)/scale + origin.X,
		Y2: (r.Max.Y+scale-1)/scale + origin.Y,
	}
}
