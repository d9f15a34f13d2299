package imaging

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is reported as the background of diagrams rendered with a
// transparent backgroundColor.
const Transparent = "transparent"

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// PaletteColor is one entry of a diagram's dominant palette.
type PaletteColor struct {
	Hex        string   `json:"hex"`        // "#RRGGBB"
	Percentage float64  `json:"percentage"` // share of opaque pixels, 0-100
	HSL        HSLColor `json:"hsl"`
}

// DominantColors returns up to count colors covering the most opaque pixels.
//
// Components are quantized to multiples of 16 so anti-aliased edges fold into
// the fill they belong to. Fully transparent pixels are ignored. Ties are
// broken by hex value so results are stable.
func DominantColors(img image.Image, count int) []PaletteColor {
	if count <= 0 {
		return []PaletteColor{}
	}

	counts := make(map[color.RGBA]int)
	total := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			key := color.RGBA{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16, A: 255}
			counts[key]++
			total++
		}
	}

	palette := make([]PaletteColor, 0, len(counts))
	for c, n := range counts {
		palette = append(palette, newPaletteColor(c, float64(n)/float64(total)*100))
	}
	sort.Slice(palette, func(i, j int) bool {
		if palette[i].Percentage != palette[j].Percentage {
			return palette[i].Percentage > palette[j].Percentage
		}
		return palette[i].Hex < palette[j].Hex
	})

	if len(palette) > count {
		palette = palette[:count]
	}
	return palette
}

// BackgroundColor returns the most common color along the image border as
// "#RRGGBB", or Transparent when most border pixels are fully transparent.
func BackgroundColor(img image.Image) string {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Transparent
	}

	counts := make(map[color.NRGBA]int)
	visit := func(x, y int) {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if c.A == 0 {
			c = color.NRGBA{}
		} else {
			c.A = 255
		}
		counts[c]++
	}
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		visit(x, bounds.Min.Y)
		if bounds.Dy() > 1 {
			visit(x, bounds.Max.Y-1)
		}
	}
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		visit(bounds.Min.X, y)
		if bounds.Dx() > 1 {
			visit(bounds.Max.X-1, y)
		}
	}

	var best color.NRGBA
	bestN := -1
	for c, n := range counts {
		if n > bestN || (n == bestN && hexOf(c) < hexOf(best)) {
			best, bestN = c, n
		}
	}
	if best.A == 0 {
		return Transparent
	}
	return hexOf(best)
}

func newPaletteColor(c color.RGBA, pct float64) PaletteColor {
	cf, _ := colorful.MakeColor(c)
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return PaletteColor{
		Hex:        strings.ToUpper(cf.Hex()),
		Percentage: math.Round(pct*100) / 100,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

func hexOf(c color.NRGBA) string {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return strings.ToUpper(cf.Hex())
}
