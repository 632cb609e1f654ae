package layout

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

const (
	// Line bands shorter than this many average heights are noise.
	minLineHeightFactor = 4.0 / 3.0

	// Character boxes within this many pixels of a column belong to it.
	columnMargin = 10
)

// lineBands finds raw line bands in col from its row-sum profile.
//
// profile holds the ink count of every pixel row of col from the bottom
// up, so index i is analysis y col.Y0+i. Bands come back top first and
// span the column's full width.
func lineBands(profile []int, col geometry.Rectangle, avgHeight, highpass float64) []geometry.Rectangle {
	spans := runs(highPassMax(profile, highpass))
	bands := make([]geometry.Rectangle, 0, len(spans))
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if float64(s.end-s.start) < minLineHeightFactor*avgHeight {
			continue
		}
		bands = append(bands, geometry.Rect(col.X0, col.Y0+s.start, col.X1, col.Y0+s.end))
	}
	return bands
}

// refineLines replaces each band with the union of the character boxes
// that overlap it vertically. Boxes are visited top first. A band no box
// reaches is dropped.
func refineLines(bands, chars []geometry.Rectangle) []geometry.Rectangle {
	refined := make([]geometry.Rectangle, len(bands))
	hit := make([]bool, len(bands))
	for _, c := range chars {
		for i, band := range bands {
			if c.OverlapsY(band) {
				refined[i].Include(c)
				hit[i] = true
			}
		}
	}

	lines := make([]geometry.Rectangle, 0, len(bands))
	for i, r := range refined {
		if hit[i] {
			lines = append(lines, r)
		}
	}
	return lines
}

// boxIndex is an R-tree over a page's character boxes.
type boxIndex struct {
	tree  rtree.RTreeG[int]
	boxes []geometry.Rectangle
}

func newBoxIndex(boxes []geometry.Rectangle) *boxIndex {
	idx := &boxIndex{boxes: boxes}
	for i, b := range boxes {
		lo, hi := bounds(b)
		idx.tree.Insert(lo, hi, i)
	}
	return idx
}

func bounds(r geometry.Rectangle) (lo, hi [2]float64) {
	return [2]float64{float64(r.X0), float64(r.Y0)}, [2]float64{float64(r.X1), float64(r.Y1)}
}

// overlapping returns the boxes overlapping r, edges included, ordered
// top first as FindHeaderLine orders them.
func (idx *boxIndex) overlapping(r geometry.Rectangle) []geometry.Rectangle {
	var hits []int
	lo, hi := bounds(r)
	idx.tree.Search(lo, hi, func(_, _ [2]float64, i int) bool {
		if idx.boxes[i].Overlaps(r) {
			hits = append(hits, i)
		}
		return true
	})
	sort.Ints(hits)

	out := make([]geometry.Rectangle, len(hits))
	for i, h := range hits {
		out[i] = idx.boxes[h]
	}
	byTopDescending(out)
	return out
}
