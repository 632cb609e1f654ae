package imaging

import (
	"image"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// ImageCache keeps decoded page images by path so that repeated tool
// calls against the same scan decode it once. It is safe for concurrent
// use. Entries live until Evict or Clear.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]image.Image)}
}

func (c *ImageCache) get(path string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[path]
	return img, ok
}

func (c *ImageCache) put(path string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[path] = img
}

// Load returns the decoded image at path, decoding it on first use.
//
// PNG, JPEG, GIF, TIFF and BMP are supported. EXIF orientation is applied
// to JPEG input so that page scans come out upright. Two goroutines racing
// on a cold path may both decode it; the last one wins.
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.get(path); ok {
		return img, nil
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load image %s", path)
	}
	c.put(path, img)
	return img, nil
}

// LoadBitmap loads a page image and converts it to a two-level bitmap.
// Images that are already two-level are used as they are; anything else
// is binarized at threshold.
func (c *ImageCache) LoadBitmap(path string, threshold uint8) (*Bitmap, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	if bm, err := FromImage(img); err == nil {
		return bm, nil
	}
	return Binarize(img, threshold), nil
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.images)
}

// Evict drops the image cached for path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.images, path)
}

// ImageInfo contains metadata about a loaded page image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "tiff", "bmp" or "unknown".
	Format string `json:"format"`

	// TwoLevel is true when the image is already binary and can be
	// segmented without thresholding.
	TwoLevel bool `json:"two_level"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		TwoLevel:      IsTwoLevel(img),
		FileSizeBytes: stat.Size(),
	}, nil
}
