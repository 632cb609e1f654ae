package geometry

// Flip converts a rectangle between the top-left raster frame and the
// bottom-left analysis frame of a page with the given height. The
// conversion is its own inverse.
func Flip(r Rectangle, pageHeight int) Rectangle {
	return Rectangle{X0: r.X0, Y0: pageHeight - r.Y1, X1: r.X1, Y1: pageHeight - r.Y0}
}

// FlipAll flips every rectangle in rects into a new slice.
func FlipAll(rects []Rectangle, pageHeight int) []Rectangle {
	out := make([]Rectangle, len(rects))
	for i, r := range rects {
		out[i] = Flip(r, pageHeight)
	}
	return out
}

// Clamp forces a caller-supplied region onto a width x height page.
//
// Negative upper bounds stand for the outer page bound. Lower bounds below
// zero become zero and lower bounds past the last pixel become the last
// pixel. Upper bounds past the page become the page dimension. Clamp is
// idempotent.
func Clamp(r Rectangle, width, height int) Rectangle {
	if r.X1 < 0 {
		r.X1 = width
	}
	if r.Y1 < 0 {
		r.Y1 = height
	}
	r.X0 = maxInt(r.X0, 0)
	r.Y0 = maxInt(r.Y0, 0)
	if r.X0 > width-1 {
		r.X0 = maxInt(width-1, 0)
	}
	if r.Y0 > height-1 {
		r.Y0 = maxInt(height-1, 0)
	}
	if r.X1 > width {
		r.X1 = width
	}
	if r.Y1 > height {
		r.Y1 = height
	}
	return r
}

// Page returns the rectangle covering a whole width x height page.
func Page(width, height int) Rectangle {
	return Rectangle{X1: width, Y1: height}
}
