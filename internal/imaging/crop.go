package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// regions maps a region name to its rectangle within a w x h image.
var regions = map[string]func(w, h int) image.Rectangle{
	"top-left":     func(w, h int) image.Rectangle { return image.Rect(0, 0, w/2, h/2) },
	"top-right":    func(w, h int) image.Rectangle { return image.Rect(w/2, 0, w, h/2) },
	"bottom-left":  func(w, h int) image.Rectangle { return image.Rect(0, h/2, w/2, h) },
	"bottom-right": func(w, h int) image.Rectangle { return image.Rect(w/2, h/2, w, h) },
	"top-half":     func(w, h int) image.Rectangle { return image.Rect(0, 0, w, h/2) },
	"bottom-half":  func(w, h int) image.Rectangle { return image.Rect(0, h/2, w, h) },
	"left-half":    func(w, h int) image.Rectangle { return image.Rect(0, 0, w/2, h) },
	"right-half":   func(w, h int) image.Rectangle { return image.Rect(w/2, 0, w, h) },
	// Center 50% of the image
	"center": func(w, h int) image.Rectangle { return image.Rect(w/4, h/4, w-w/4, h-h/4) },
}

// RegionNames returns the names CropRegion accepts, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CropRegion returns the named part of img, e.g. "top-left" or "center".
// The empty name returns img unchanged; otherwise the result starts at (0,0).
func CropRegion(img image.Image, name string) (image.Image, error) {
	if name == "" {
		return img, nil
	}
	rect, ok := regions[name]
	if !ok {
		return nil, fmt.Errorf("unknown region: %s", name)
	}

	b := img.Bounds()
	r := rect(b.Dx(), b.Dy()).Add(b.Min)
	if r.Empty() {
		return nil, fmt.Errorf("region %s of a %dx%d image is empty", name, b.Dx(), b.Dy())
	}
	return imaging.Crop(img, r), nil
}
