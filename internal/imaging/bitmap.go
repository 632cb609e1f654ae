package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

// ErrNotBinary is returned when an image has more than two gray levels and
// therefore cannot be used as a segmentation input without thresholding.
var ErrNotBinary = errors.New("image is not two-level")

// Bitmap is a two-level raster. Pixels are either ink or background.
//
// Coordinates are raster coordinates: (0,0) is the top-left pixel and Y
// increases downward. Methods taking a rectangle clip it to the bitmap.
type Bitmap struct {
	width  int
	height int
	ink    []bool
}

// NewBitmap returns an all-background bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{width: width, height: height, ink: make([]bool, width*height)}
}

// Width of the bitmap in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height of the bitmap in pixels.
func (b *Bitmap) Height() int { return b.height }

// Bounds returns the rectangle covering the whole bitmap.
func (b *Bitmap) Bounds() geometry.Rectangle {
	return geometry.Page(b.width, b.height)
}

// Ink reports whether the pixel at x, y is ink. Out of range is background.
func (b *Bitmap) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.ink[y*b.width+x]
}

// Set marks the pixel at x, y. Out of range writes are ignored.
func (b *Bitmap) Set(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.ink[y*b.width+x] = ink
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{width: b.width, height: b.height, ink: make([]bool, len(b.ink))}
	copy(c.ink, b.ink)
	return c
}

// InkCount returns the number of ink pixels.
func (b *Bitmap) InkCount() int {
	n := 0
	for _, v := range b.ink {
		if v {
			n++
		}
	}
	return n
}

// clip intersects r with the bitmap bounds. A rectangle inverted on
// either axis clips to nothing.
func (b *Bitmap) clip(r geometry.Rectangle) geometry.Rectangle {
	if r.X0 >= r.X1 || r.Y0 >= r.Y1 {
		return geometry.Rectangle{}
	}
	return geometry.FromImageRect(r.ImageRect().Intersect(image.Rect(0, 0, b.width, b.height)))
}

// Fill paints every pixel of r with the given value.
func (b *Bitmap) Fill(r geometry.Rectangle, ink bool) {
	r = b.clip(r)
	for y := r.Y0; y < r.Y1; y++ {
		row := b.ink[y*b.width : (y+1)*b.width]
		for x := r.X0; x < r.X1; x++ {
			row[x] = ink
		}
	}
}

// SubImage copies the pixels of r into a new bitmap whose origin is r's
// top-left corner.
func (b *Bitmap) SubImage(r geometry.Rectangle) *Bitmap {
	r = b.clip(r)
	sub := NewBitmap(r.Width(), r.Height())
	for y := r.Y0; y < r.Y1; y++ {
		copy(sub.ink[(y-r.Y0)*sub.width:(y-r.Y0+1)*sub.width], b.ink[y*b.width+r.X0:y*b.width+r.X1])
	}
	return sub
}

// ColumnSums returns the ink count of every pixel column of r, left to right.
func (b *Bitmap) ColumnSums(r geometry.Rectangle) []int {
	r = b.clip(r)
	sums := make([]int, r.Width())
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if b.ink[y*b.width+x] {
				sums[x-r.X0]++
			}
		}
	}
	return sums
}

// RowSums returns the ink count of every pixel row of r, top to bottom.
func (b *Bitmap) RowSums(r geometry.Rectangle) []int {
	r = b.clip(r)
	sums := make([]int, r.Height())
	for y := r.Y0; y < r.Y1; y++ {
		for x := r.X0; x < r.X1; x++ {
			if b.ink[y*b.width+x] {
				sums[y-r.Y0]++
			}
		}
	}
	return sums
}

// Image renders the bitmap as black ink on a white background.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.width, b.height))
	for i, v := range b.ink {
		if v {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
	return img
}

// grayLevels collects up to limit+1 distinct gray values of img.
func grayLevels(img image.Image, limit int) []uint8 {
	bounds := img.Bounds()
	seen := make(map[uint8]struct{}, limit+1)
	levels := make([]uint8, 0, limit+1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			levels = append(levels, g)
			if len(levels) > limit {
				return levels
			}
		}
	}
	return levels
}

// IsTwoLevel reports whether img has at most two gray levels.
func IsTwoLevel(img image.Image) bool {
	return len(grayLevels(img, 2)) <= 2
}

// FromImage converts a two-level image into a Bitmap. The darker level is
// ink. A single-level image is all ink when it is dark and all background
// otherwise. Images with more than two levels fail with ErrNotBinary.
func FromImage(img image.Image) (*Bitmap, error) {
	levels := grayLevels(img, 2)
	if len(levels) > 2 {
		return nil, errors.Wrapf(ErrNotBinary, "found more than two gray levels in %dx%d image",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	var inkLevel uint8
	hasInk := false
	switch len(levels) {
	case 1:
		if levels[0] < 128 {
			inkLevel, hasInk = levels[0], true
		}
	case 2:
		inkLevel, hasInk = levels[0], true
		if levels[1] < levels[0] {
			inkLevel = levels[1]
		}
	}

	bounds := img.Bounds()
	bm := NewBitmap(bounds.Dx(), bounds.Dy())
	if !hasInk {
		return bm, nil
	}
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			g := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray).Y
			bm.ink[y*bm.width+x] = g == inkLevel
		}
	}
	return bm, nil
}

// Binarize thresholds an arbitrary image into a Bitmap. Pixels whose
// luminance is below level become ink.
func Binarize(img image.Image, level uint8) *Bitmap {
	gray := imaging.Grayscale(img)
	thresholded := segment.Threshold(gray, level)

	bounds := thresholded.Bounds()
	bm := NewBitmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			bm.ink[y*bm.width+x] = thresholded.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y == 0
		}
	}
	return bm
}
