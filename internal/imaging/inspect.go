package imaging

// DefaultPaletteSize is the number of palette entries InspectDiagram reports
// when InspectOptions.PaletteSize is zero.
const DefaultPaletteSize = 5

// InspectOptions controls what InspectDiagram computes.
type InspectOptions struct {
	// PaletteSize caps the number of dominant colors. Zero means DefaultPaletteSize.
	PaletteSize int

	// PreviewWidth and PreviewHeight bound the optional thumbnail. When both
	// are zero no preview is produced.
	PreviewWidth  int
	PreviewHeight int

	// Region limits the preview to a named part of the diagram (see
	// RegionNames). A region without bounds is previewed at full size.
	Region string
}

// DiagramInfo describes a rendered raster diagram.
type DiagramInfo struct {
	Path string `json:"path"`
	ImageInfo
	Background string         `json:"background"`
	Palette    []PaletteColor `json:"palette"`
	Preview    *PreviewResult `json:"preview,omitempty"`
}

// InspectDiagram loads path through cache and reports its dimensions,
// background, dominant palette and, when requested, a preview thumbnail of
// the whole diagram or of one region.
func InspectDiagram(cache *ImageCache, path string, opts InspectOptions) (*DiagramInfo, error) {
	img, stat, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	info := describe(img, stat, path)

	size := opts.PaletteSize
	if size == 0 {
		size = DefaultPaletteSize
	}

	result := &DiagramInfo{
		Path:       path,
		ImageInfo:  *info,
		Background: BackgroundColor(img),
		Palette:    DominantColors(img, size),
	}

	if opts.PreviewWidth > 0 || opts.PreviewHeight > 0 || opts.Region != "" {
		region, err := CropRegion(img, opts.Region)
		if err != nil {
			return nil, err
		}
		preview, err := Preview(region, opts.PreviewWidth, opts.PreviewHeight)
		if err != nil {
			return nil, err
		}
		result.Preview = preview
	}
	return result, nil
}
