package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for files that cannot be decoded as raster
// images, such as svg and txt renders.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageCache provides thread-safe caching of decoded diagrams to avoid redundant disk reads.
//
// Entries are keyed by the cleaned absolute path and remember the file's
// modification time and size. A Load that finds either changed decodes the
// file again, so rewrites by other processes are picked up without Evict.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/diagram.png")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img     image.Image
	modTime time.Time
	size    int64
}

func (e cachedImage) matches(stat os.FileInfo) bool {
	return e.size == stat.Size() && e.modTime.Equal(stat.ModTime())
}

// NewImageCache creates an empty cache ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// cacheKey normalizes path so that aliases such as "dir/./a.png" and a
// relative spelling share one entry.
func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Load returns the cached image for path or decodes it from disk.
//
// Supported formats are PNG, JPEG and GIF. Paths with any other extension
// fail with ErrUnsupportedFormat before the file is opened.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.load(path)
	return img, err
}

// load is Load that also returns the stat the image was validated against.
func (c *ImageCache) load(path string) (image.Image, os.FileInfo, error) {
	if formatFromExt(path) == "unknown" {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.TrimPrefix(filepath.Ext(path), "."))
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}

	key := cacheKey(path)
	c.mu.RLock()
	entry, ok := c.images[key]
	c.mu.RUnlock()
	if ok && entry.matches(stat) {
		return entry.img, stat, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.Lock()
	c.images[key] = cachedImage{img: img, modTime: stat.ModTime(), size: stat.Size()}
	c.mu.Unlock()

	return img, stat, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes path, under any spelling, from the cache. Unknown paths are
// ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, cacheKey(path))
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a rendered diagram image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg" or "gif", detected from the file extension.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Dimensions, format, alpha presence and file size.
//   - error: Non-nil if the file is missing or cannot be decoded.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, stat, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	return describe(img, stat, path), nil
}

func describe(img image.Image, stat os.FileInfo, path string) *ImageInfo {
	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatFromExt(path),
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}
