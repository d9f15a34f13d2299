// Package ocr reads the text back out of rendered PlantUML diagrams.
//
// Clients use it to check that a render contains the participants, classes
// and labels they expect without decoding the image themselves. Text is
// extracted with the Tesseract engine through gosseract/v2.
//
// # Prerequisites
//
// Tesseract and its headers must be installed where the server is built:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Preprocessing
//
// PlantUML draws small anti-aliased text on pale fills. Before recognition the
// image is upscaled when narrow, converted to grayscale and given extra
// contrast (bild effect/adjust). Word bounds are mapped back to the
// coordinates of the original image.
//
// # Languages
//
// The default language is "eng". Any installed Tesseract language code works,
// e.g. "deu", "fra", "chi_sim".
package ocr
