package imaging

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

// OverlayLayer is one kind of region to draw, e.g. all detected lines.
type OverlayLayer struct {
	Name  string
	Rects []geometry.Rectangle
}

// LayerColors returns n well separated, fully opaque outline colours.
func LayerColors(n int) []color.RGBA {
	colors := make([]color.RGBA, n)
	for i := range colors {
		c := colorful.Hsv(360*float64(i)/float64(max(n, 1)), 0.9, 0.85).Clamped()
		r, g, b := c.RGB255()
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// Overlay draws the outline of every rectangle in every layer over a copy
// of img. Rectangles are in raster coordinates. Each layer gets its own
// colour from LayerColors; later layers are drawn on top.
func Overlay(img image.Image, layers []OverlayLayer, thickness int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	if thickness < 1 {
		thickness = 1
	}

	colors := LayerColors(len(layers))
	for i, layer := range layers {
		for _, r := range layer.Rects {
			drawOutline(result, r, thickness, colors[i])
		}
	}
	return result
}

// drawOutline draws a rectangle border inside r.
func drawOutline(img *image.RGBA, r geometry.Rectangle, thickness int, c color.RGBA) {
	src := image.NewUniform(c)
	box := r.ImageRect().Intersect(img.Bounds())
	if box.Empty() {
		return
	}
	t := min(thickness, (min(box.Dx(), box.Dy())+1)/2)
	edges := []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+t),
		image.Rect(box.Min.X, box.Max.Y-t, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+t, box.Max.Y),
		image.Rect(box.Max.X-t, box.Min.Y, box.Max.X, box.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}
