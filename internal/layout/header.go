package layout

import (
	"sort"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

const (
	// maxHeaderAttempts bounds how many candidate boxes FindHeaderLine
	// tries as a line seed.
	maxHeaderAttempts = 200

	// A header line must be at least this many average heights tall.
	headerHeightFactor = 1.5
)

// byTopDescending orders analysis-frame boxes nearest the top of the page
// first. Ties go left to right, then bottom to top.
func byTopDescending(boxes []geometry.Rectangle) {
	sort.SliceStable(boxes, func(i, j int) bool {
		a, b := boxes[i], boxes[j]
		if a.Y1 != b.Y1 {
			return a.Y1 > b.Y1
		}
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		return a.Y0 < b.Y0
	})
}

// FindHeaderLine finds the topmost text line among the character boxes
// lying wholly below top, in the analysis frame.
//
// Boxes are tried as seeds from the top down. A seed's line is the union
// of every candidate overlapping it vertically; the first line with at
// least two members and a height of 1.5 average heights wins. If no seed
// qualifies within 200 attempts the last line tried is used. ok is false
// only when there are no candidates. The caller continues below line.Y0.
func FindHeaderLine(chars []geometry.Rectangle, top int, avgHeight float64) (line geometry.Rectangle, ok bool) {
	candidates := make([]geometry.Rectangle, 0, len(chars))
	for _, b := range chars {
		if b.Y1 <= top {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return geometry.Rectangle{}, false
	}
	byTopDescending(candidates)

	for i := 0; i < len(candidates) && i < maxHeaderAttempts; i++ {
		seed := candidates[i]
		line = geometry.Rectangle{}
		members := 0
		for _, b := range candidates {
			if seed.OverlapsY(b) {
				line.Include(b)
				members++
			}
		}
		if members >= 2 && float64(line.Height()) >= headerHeightFactor*avgHeight {
			break
		}
	}
	return line, true
}
