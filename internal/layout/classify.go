package layout

import (
	"sort"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

// Character box limits.
const (
	minCharArea   = 4
	maxCharArea   = 10000
	minCharAspect = 0.2
	maxCharAspect = 5.0

	// Boxes bigger than largeAreaFactor average-height squares, or
	// stretched past oddAspect, are painted out before line finding.
	largeAreaFactor = 100.0
	oddAspect       = 10.0

	// Percent of heights dropped from each end by AverageHeight.
	heightTrimPercent = 5
)

// IsCharacter reports whether r could plausibly be a glyph.
func IsCharacter(r geometry.Rectangle) bool {
	area := r.Area()
	aspect := r.Aspect()
	return area >= minCharArea && area <= maxCharArea &&
		aspect >= minCharAspect && aspect <= maxCharAspect
}

// IsLargeOrOdd reports whether r is too big or too stretched to be text
// of the given average height: rules, images, borders.
func IsLargeOrOdd(r geometry.Rectangle, avgHeight float64) bool {
	aspect := r.Aspect()
	return float64(r.Area()) > largeAreaFactor*avgHeight*avgHeight ||
		aspect < minCharAspect || aspect > oddAspect
}

// CharacterBoxes returns the boxes for which IsCharacter holds, in order.
func CharacterBoxes(boxes []geometry.Rectangle) []geometry.Rectangle {
	out := make([]geometry.Rectangle, 0, len(boxes))
	for _, b := range boxes {
		if IsCharacter(b) {
			out = append(out, b)
		}
	}
	return out
}

// AverageHeight is the mean box height after discarding the lowest and
// highest 5% of heights. It is 0 when there are no boxes.
func AverageHeight(boxes []geometry.Rectangle) float64 {
	heights := make([]int, len(boxes))
	for i, b := range boxes {
		heights[i] = b.Height()
	}
	sort.Ints(heights)

	trim := len(heights) * heightTrimPercent / 100
	heights = heights[trim : len(heights)-trim]
	if len(heights) == 0 {
		return 0
	}

	sum := 0
	for _, h := range heights {
		sum += h
	}
	return float64(sum) / float64(len(heights))
}

// StripNonChars fills every large or odd box with background in bm and
// returns the remaining boxes. Boxes and bm share a coordinate frame.
func StripNonChars(bm *imaging.Bitmap, boxes []geometry.Rectangle, avgHeight float64) []geometry.Rectangle {
	kept := make([]geometry.Rectangle, 0, len(boxes))
	for _, b := range boxes {
		if IsLargeOrOdd(b, avgHeight) {
			bm.Fill(b, false)
			continue
		}
		kept = append(kept, b)
	}
	return kept
}
