package geometry

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Rectangle is an axis-aligned integer box spanning [X0,X1) x [Y0,Y1).
//
// Rectangles are plain values. Include and IncludePoint grow a rectangle in
// place so it can be used as an accumulator when folding boxes together.
type Rectangle struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// Rect is shorthand for Rectangle{x0, y0, x1, y1}.
func Rect(x0, y0, x1, y1 int) Rectangle {
	return Rectangle{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// FromImageRect converts an image.Rectangle into a Rectangle.
func FromImageRect(r image.Rectangle) Rectangle {
	return Rectangle{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}
}

// ImageRect converts the rectangle into an image.Rectangle.
func (r Rectangle) ImageRect() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("<Rectangle: %d %d %d %d>", r.X0, r.Y0, r.X1, r.Y1)
}

// Points returns the four coordinates in x0, y0, x1, y1 order.
func (r Rectangle) Points() [4]int {
	return [4]int{r.X0, r.Y0, r.X1, r.Y1}
}

// Width is never negative, even for inverted rectangles.
func (r Rectangle) Width() int {
	return maxInt(0, r.X1-r.X0)
}

// Height is never negative, even for inverted rectangles.
func (r Rectangle) Height() int {
	return maxInt(0, r.Y1-r.Y0)
}

// Empty reports whether the rectangle is inverted on both axes.
//
// A rectangle that is degenerate on only one axis is not empty, although
// its area is zero. Callers that need "has no pixels" should test Area.
func (r Rectangle) Empty() bool {
	return r.X0 >= r.X1 && r.Y0 >= r.Y1
}

// Area is zero for empty rectangles.
func (r Rectangle) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Aspect returns width/height, or 1 for an empty rectangle.
// A zero-height rectangle that is not empty yields +Inf.
func (r Rectangle) Aspect() float64 {
	if r.Empty() {
		return 1
	}
	return float64(r.Width()) / float64(r.Height())
}

// Overlaps reports whether the two rectangles touch or intersect on both
// axes. Rectangles sharing an edge overlap.
func (r Rectangle) Overlaps(other Rectangle) bool {
	return r.OverlapsX(other) && r.OverlapsY(other)
}

// OverlapsX reports whether the horizontal ranges touch or intersect.
func (r Rectangle) OverlapsX(other Rectangle) bool {
	return r.X0 <= other.X1 && r.X1 >= other.X0
}

// OverlapsY reports whether the vertical ranges touch or intersect.
func (r Rectangle) OverlapsY(other Rectangle) bool {
	return r.Y0 <= other.Y1 && r.Y1 >= other.Y0
}

// Contains is a half-open point test.
func (r Rectangle) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Intersection returns the component-wise intersection. If r is empty it
// is returned unchanged. Disjoint rectangles produce an inverted result
// whose Area is zero.
func (r Rectangle) Intersection(other Rectangle) Rectangle {
	if r.Empty() {
		return r
	}
	return Rectangle{
		X0: maxInt(r.X0, other.X0),
		Y0: maxInt(r.Y0, other.Y0),
		X1: minInt(r.X1, other.X1),
		Y1: minInt(r.Y1, other.Y1),
	}
}

// Union returns the smallest rectangle covering both. An empty r yields other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	u := r
	u.Include(other)
	return u
}

// FractionCoveredBy returns the share of r's area inside other, or -1 when
// r has no area.
func (r Rectangle) FractionCoveredBy(other Rectangle) float64 {
	area := r.Area()
	if area == 0 {
		return -1
	}
	return float64(r.Intersection(other).Area()) / float64(area)
}

// Grow returns a copy expanded by dx on the left and right and dy on the
// top and bottom. Negative values shrink.
func (r Rectangle) Grow(dx, dy int) Rectangle {
	return Rectangle{X0: r.X0 - dx, Y0: r.Y0 - dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Translate returns a copy shifted by dx, dy.
func (r Rectangle) Translate(dx, dy int) Rectangle {
	return Rectangle{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Include grows r to cover other. An empty r is replaced by other.
func (r *Rectangle) Include(other Rectangle) {
	if r.Empty() {
		*r = other
		return
	}
	r.X0 = minInt(r.X0, other.X0)
	r.Y0 = minInt(r.Y0, other.Y0)
	r.X1 = maxInt(r.X1, other.X1)
	r.Y1 = maxInt(r.Y1, other.Y1)
}

// IncludePoint grows r to cover the pixel at x, y.
func (r *Rectangle) IncludePoint(x, y int) {
	r.Include(Rectangle{X0: x, Y0: y, X1: x + 1, Y1: y + 1})
}

// UnionOf folds rects into an accumulator that starts as the empty
// rectangle (0,0,0,0). With no arguments the empty rectangle is returned.
func UnionOf(rects ...Rectangle) Rectangle {
	var u Rectangle
	for _, r := range rects {
		u.Include(r)
	}
	return u
}

// MarshalJSON encodes the rectangle as [x0, y0, x1, y1].
func (r Rectangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Points())
}

// UnmarshalJSON accepts the [x0, y0, x1, y1] form.
func (r *Rectangle) UnmarshalJSON(data []byte) error {
	var pts []int
	if err := json.Unmarshal(data, &pts); err != nil {
		return errors.Wrap(err, "rectangle must be an array of integers")
	}
	if len(pts) != 4 {
		return errors.Errorf("rectangle needs 4 coordinates, got %d", len(pts))
	}
	*r = Rectangle{X0: pts[0], Y0: pts[1], X1: pts[2], Y1: pts[3]}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
