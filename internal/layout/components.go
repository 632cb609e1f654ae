package layout

import (
	"image"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

// Components covering more than this share of the page are background.
const fullPageFraction = 0.95

// ExtractComponents returns the bounding box of every 8-connected ink
// region of bm, in raster coordinates and scan order. Boxes larger than
// 95% of the page are dropped.
func ExtractComponents(bm *imaging.Bitmap) []geometry.Rectangle {
	width, height := bm.Width(), bm.Height()
	visited := make([]bool, width*height)
	limit := float64(width*height) * fullPageFraction

	boxes := make([]geometry.Rectangle, 0)
	var stack []image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !bm.Ink(x, y) {
				continue
			}
			box := labelComponent(bm, visited, x, y, &stack)
			if float64(box.Area()) > limit {
				continue
			}
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// labelComponent flood-fills the component containing (startX, startY),
// marking its pixels visited, and returns its bounding box.
//
// The fill is iterative so that page-sized components cannot overflow the
// goroutine stack. stack is scratch space reused between calls.
func labelComponent(bm *imaging.Bitmap, visited []bool, startX, startY int, stack *[]image.Point) geometry.Rectangle {
	width, height := bm.Width(), bm.Height()
	var box geometry.Rectangle

	s := append((*stack)[:0], image.Point{X: startX, Y: startY})
	for len(s) > 0 {
		p := s[len(s)-1]
		s = s[:len(s)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if visited[i] || !bm.Ink(p.X, p.Y) {
			continue
		}
		visited[i] = true
		box.IncludePoint(p.X, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				s = append(s, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	*stack = s[:0]
	return box
}
