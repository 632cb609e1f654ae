package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

// Analysis-frame boxes on a 100 pixel page: a two-glyph title and a
// two-glyph body line, each 12 pixels tall with 8 pixel glyphs.
var headerPage = []geometry.Rectangle{
	geometry.Rect(10, 80, 16, 88),
	geometry.Rect(19, 76, 25, 84),
	geometry.Rect(10, 50, 16, 58),
	geometry.Rect(19, 46, 25, 54),
}

func TestFindHeaderLine(t *testing.T) {
	line, ok := FindHeaderLine(headerPage, 100, 8)
	assert.True(t, ok)
	assert.Equal(t, geometry.Rect(10, 76, 25, 88), line)

	line, ok = FindHeaderLine(headerPage, line.Y0, 8)
	assert.True(t, ok)
	assert.Equal(t, geometry.Rect(10, 46, 25, 58), line)

	_, ok = FindHeaderLine(headerPage, line.Y0, 8)
	assert.False(t, ok)
}

func TestFindHeaderLine_SkipsLoneSeed(t *testing.T) {
	// A page number sits alone above the title.
	boxes := append([]geometry.Rectangle{geometry.Rect(50, 95, 54, 99)}, headerPage...)

	line, ok := FindHeaderLine(boxes, 100, 8)
	assert.True(t, ok)
	assert.Equal(t, geometry.Rect(10, 76, 25, 88), line)
}

func TestFindHeaderLine_FallsBackToLastTried(t *testing.T) {
	boxes := []geometry.Rectangle{geometry.Rect(50, 95, 54, 99)}

	line, ok := FindHeaderLine(boxes, 100, 8)
	assert.True(t, ok)
	assert.Equal(t, boxes[0], line)
}

func TestFindHeaderLine_NoCandidates(t *testing.T) {
	_, ok := FindHeaderLine(nil, 100, 8)
	assert.False(t, ok)

	_, ok = FindHeaderLine(headerPage, 40, 8)
	assert.False(t, ok)
}

func TestFindHeaderLine_DoesNotReorderInput(t *testing.T) {
	boxes := []geometry.Rectangle{headerPage[2], headerPage[0]}
	FindHeaderLine(boxes, 100, 8)
	assert.Equal(t, headerPage[2], boxes[0])
}
