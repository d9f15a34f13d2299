// Package imaging inspects rendered diagrams for the MCP server.
//
// PlantUML output is opaque to the rest of the server; this package is the one
// place that decodes it. It answers the questions a client asks after a
// render: how large is the image, what is the background, which colors
// dominate, and what does a small preview look like.
//
// # Regions
//
// Previews can be limited to a named part of the diagram: top-left,
// top-right, bottom-left, bottom-right, the four halves, or center (the
// middle 50% in each direction). Long sequence diagrams are easier to read
// a region at a time.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The analysis functions are stateless
// and never modify the images they are given.
//
// # Color Representation
//
// Colors are reported as "#RRGGBB" hex strings (alpha excluded) together with
// HSL values: Hue (0-360), Saturation (0-100), Lightness (0-100). Conversion is
// done with github.com/lucasb-eyer/go-colorful.
//
// # Supported Formats
//
// PNG, JPEG and GIF. SVG and txt renders are rejected with
// ErrUnsupportedFormat; render them as png to inspect them.
package imaging
