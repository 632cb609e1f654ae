package layout

import (
	"sort"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

// Column-sum values below this share of the median are treated as gutter.
const columnMedianScale = 0.20

// FindColumns splits the body below top into column bands.
//
// profile holds the ink count of every pixel column of the body, left to
// right. Runs that survive the median high-pass become rectangles spanning
// the body's full height. When there are more runs than target only the
// largest are kept; fewer runs are returned as they are. The result is
// ordered left to right.
func FindColumns(profile []int, top, target int) []geometry.Rectangle {
	cols := make([]geometry.Rectangle, 0)
	for _, s := range runs(highPassMedian(profile, columnMedianScale)) {
		cols = append(cols, geometry.Rect(s.start, 0, s.end, top))
	}
	return filterColumns(cols, target)
}

// filterColumns keeps the target largest columns by area.
func filterColumns(cols []geometry.Rectangle, target int) []geometry.Rectangle {
	if len(cols) <= target {
		return cols
	}
	best := append([]geometry.Rectangle(nil), cols...)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].Area() > best[j].Area()
	})
	best = best[:target]
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].X0 < best[j].X0
	})
	return best
}
