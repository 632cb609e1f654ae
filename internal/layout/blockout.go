package layout

import (
	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

// BlockOut returns a copy of bm with every region of s painted as
// background. Regions use the same string form as ManualSegmenter and
// are clamped to the page, so negative upper bounds reach the page edge.
// Regions with no area after clamping, including inverted ones, paint
// nothing. An empty or entirely malformed s leaves the copy unchanged.
func BlockOut(bm *imaging.Bitmap, s string) *imaging.Bitmap {
	out := bm.Clone()
	for _, r := range ParseRegions(s) {
		r = geometry.Clamp(r, out.Width(), out.Height())
		if r.Area() == 0 {
			continue
		}
		out.Fill(r, false)
	}
	return out
}
