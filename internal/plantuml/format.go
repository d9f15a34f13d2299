package plantuml

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Format is an output format understood by the PlantUML engine.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatTXT Format = "txt"
)

// DefaultFormat is used when a request does not name a format.
const DefaultFormat = FormatPNG

// Formats lists the supported formats in the order they are advertised to clients.
func Formats() []string {
	return []string{string(FormatPNG), string(FormatSVG), string(FormatTXT)}
}

// ParseFormat converts a user supplied format name into a Format.
//
// An empty string yields DefaultFormat. Names are matched case-insensitively
// after trimming surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultFormat, nil
	}
	switch f := Format(name); f {
	case FormatPNG, FormatSVG, FormatTXT:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected png, svg or txt)", s)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Flag returns the PlantUML command line switch selecting this format.
func (f Format) Flag() string {
	return "-t" + string(f)
}

// IsImage reports whether the format produces an image that can be embedded
// as a data URI.
func (f Format) IsImage() bool {
	return f == FormatPNG || f == FormatSVG
}

// DataURI encodes data as a base64 data URI tagged with the format name.
//
// The media type is "image/<format>", so SVG output is tagged "image/svg".
// Clients of the original tool surface depend on that exact prefix.
func (f Format) DataURI(data []byte) string {
	return "data:image/" + string(f) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
