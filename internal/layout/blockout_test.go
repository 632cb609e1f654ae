package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

func TestBlockOut(t *testing.T) {
	bm := imaging.NewBitmap(20, 10)
	bm.Fill(bm.Bounds(), true)

	out := BlockOut(bm, "0,0,5,-1")
	assert.Equal(t, 150, out.InkCount())
	assert.False(t, out.Ink(4, 9))
	assert.True(t, out.Ink(5, 0))
	assert.Equal(t, 200, bm.InkCount(), "input untouched")
}

func TestBlockOut_Several(t *testing.T) {
	bm := imaging.NewBitmap(20, 10)
	bm.Fill(bm.Bounds(), true)

	out := BlockOut(bm, "0,0,2,2~18,8,-1,-1~junk")
	assert.Equal(t, 192, out.InkCount())
}

func TestBlockOut_ClampsToPage(t *testing.T) {
	bm := imaging.NewBitmap(20, 10)
	bm.Fill(bm.Bounds(), true)

	out := BlockOut(bm, "-5,-5,100,100")
	assert.Equal(t, 0, out.InkCount())
}

func TestBlockOut_NoRegions(t *testing.T) {
	bm := imaging.NewBitmap(20, 10)
	bm.Fill(geometry.Rect(3, 3, 6, 6), true)

	assert.Equal(t, bm, BlockOut(bm, ""))
	assert.Equal(t, bm, BlockOut(bm, "1,2,3"))
}

func TestBlockOut_InvertedRegion(t *testing.T) {
	bm := imaging.NewBitmap(100, 20)
	bm.Fill(bm.Bounds(), true)

	tests := []struct {
		name  string
		boxes string
	}{
		{"x inverted", "50,0,10,10"},
		{"y inverted", "0,15,100,5"},
		{"both inverted", "60,15,20,5"},
		{"zero width", "30,0,30,-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BlockOut(bm, tt.boxes)
			assert.Equal(t, 2000, out.InkCount())
		})
	}
}
