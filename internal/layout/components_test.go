package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

func TestExtractComponents(t *testing.T) {
	bm := imaging.NewBitmap(40, 30)
	bm.Fill(geometry.Rect(2, 3, 8, 9), true)
	bm.Fill(geometry.Rect(20, 10, 25, 25), true)

	boxes := ExtractComponents(bm)
	assert.Equal(t, []geometry.Rectangle{
		geometry.Rect(2, 3, 8, 9),
		geometry.Rect(20, 10, 25, 25),
	}, boxes)
}

func TestExtractComponents_DiagonalIsConnected(t *testing.T) {
	bm := imaging.NewBitmap(10, 10)
	bm.Set(1, 1, true)
	bm.Set(2, 2, true)
	bm.Set(3, 3, true)
	bm.Set(3, 1, true) // joins through (2,2)

	boxes := ExtractComponents(bm)
	assert.Equal(t, []geometry.Rectangle{geometry.Rect(1, 1, 4, 4)}, boxes)
}

func TestExtractComponents_Irregular(t *testing.T) {
	// An L shape is one component with the L's bounding box.
	bm := imaging.NewBitmap(20, 20)
	bm.Fill(geometry.Rect(5, 5, 7, 15), true)
	bm.Fill(geometry.Rect(5, 13, 15, 15), true)

	assert.Equal(t, []geometry.Rectangle{geometry.Rect(5, 5, 15, 15)}, ExtractComponents(bm))
}

func TestExtractComponents_DropsFullPage(t *testing.T) {
	bm := imaging.NewBitmap(20, 20)
	bm.Fill(bm.Bounds(), true)

	boxes := ExtractComponents(bm)
	assert.NotNil(t, boxes)
	assert.Empty(t, boxes)
}

func TestExtractComponents_KeepsLargeButNotFullPage(t *testing.T) {
	bm := imaging.NewBitmap(20, 20)
	bm.Fill(geometry.Rect(0, 0, 20, 18), true) // 90% of the page

	assert.Len(t, ExtractComponents(bm), 1)
}

func TestExtractComponents_Empty(t *testing.T) {
	assert.Empty(t, ExtractComponents(imaging.NewBitmap(15, 15)))
	assert.Empty(t, ExtractComponents(imaging.NewBitmap(0, 0)))
}
