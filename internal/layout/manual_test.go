package layout

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
)

// fakeEngine returns the same output for every region and records what it
// was given.
type fakeEngine struct {
	out    *EngineOutput
	err    error
	images []image.Image
}

func (f *fakeEngine) Segment(img image.Image) (*EngineOutput, error) {
	f.images = append(f.images, img)
	return f.out, f.err
}

func (f *fakeEngine) sizes() []image.Point {
	sizes := make([]image.Point, len(f.images))
	for i, img := range f.images {
		sizes[i] = img.Bounds().Size()
	}
	return sizes
}

func TestParseRegions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []geometry.Rectangle
	}{
		{"empty", "", []geometry.Rectangle{}},
		{"blank", "   ", []geometry.Rectangle{}},
		{"one", "1,2,3,4", []geometry.Rectangle{geometry.Rect(1, 2, 3, 4)}},
		{"two", "1,2,3,4~5,6,7,8", []geometry.Rectangle{geometry.Rect(1, 2, 3, 4), geometry.Rect(5, 6, 7, 8)}},
		{"spaces", " 1, 2 ,3,4 ", []geometry.Rectangle{geometry.Rect(1, 2, 3, 4)}},
		{"negative", "0,0,-1,-1", []geometry.Rectangle{geometry.Rect(0, 0, -1, -1)}},
		{"three values", "1,2,3~4,5,6,7", []geometry.Rectangle{geometry.Rect(4, 5, 6, 7)}},
		{"five values", "1,2,3,4,5", []geometry.Rectangle{}},
		{"not a number", "abc,0,10,10~0,0,10,10", []geometry.Rectangle{geometry.Rect(0, 0, 10, 10)}},
		{"float", "1.5,2,3,4", []geometry.Rectangle{}},
		{"trailing separator", "1,2,3,4~", []geometry.Rectangle{geometry.Rect(1, 2, 3, 4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRegions(tt.in))
		})
	}
}

func TestRegions_NegativeMeansWholePage(t *testing.T) {
	regions := Regions("0,0,-1,-1", 200, 100)
	assert.Equal(t, []geometry.Rectangle{geometry.Page(200, 100)}, regions)
}

func TestRegions_MalformedGroupDropped(t *testing.T) {
	regions := Regions("abc,0,10,10~0,0,10,10", 200, 100)
	require.Len(t, regions, 1)
	assert.Equal(t, geometry.Rect(0, 0, 10, 10), geometry.Flip(regions[0], 100))
}

func TestRegions_Clamped(t *testing.T) {
	regions := Regions("-20,-20,500,50~150,300,-1,-1", 200, 100)
	assert.Equal(t, []geometry.Rectangle{
		geometry.Rect(0, 0, 200, 50),
		geometry.Rect(150, 99, 200, 100),
	}, geometry.FlipAll(regions, 100))
}

func TestRegions_DefaultsToWholePage(t *testing.T) {
	for _, s := range []string{"", "junk", "50,50,10,10"} {
		assert.Equal(t, []geometry.Rectangle{geometry.Page(200, 100)}, Regions(s, 200, 100), "input %q", s)
	}
}

func TestManualSegmenter_TranslatesToPage(t *testing.T) {
	bm := imaging.NewBitmap(200, 100)
	bm.Set(12, 25, true)
	engine := &fakeEngine{out: &EngineOutput{
		Lines:      []geometry.Rectangle{geometry.Rect(1, 2, 5, 6)},
		Paragraphs: []geometry.Rectangle{geometry.Rect(0, 0, 50, 60)},
	}}

	result, err := NewManualSegmenter(engine).Segment(bm, "10,20,60,80~100,0,-1,-1")
	require.NoError(t, err)

	assert.Equal(t, []image.Point{{50, 60}, {100, 100}}, engine.sizes())
	assert.Equal(t, color.Gray{Y: 0}, color.GrayModel.Convert(engine.images[0].At(2, 5)), "ink carried into the region")
	assert.Equal(t, color.Gray{Y: 255}, color.GrayModel.Convert(engine.images[0].At(3, 5)))

	assert.Equal(t, []geometry.Rectangle{
		geometry.Rect(10, 20, 60, 80),
		geometry.Rect(100, 0, 200, 100),
	}, result.Columns)
	assert.Equal(t, []geometry.Rectangle{
		geometry.Rect(11, 22, 15, 26),
		geometry.Rect(101, 2, 105, 6),
	}, result.Lines)
	assert.Equal(t, []geometry.Rectangle{
		geometry.Rect(10, 20, 60, 80),
		geometry.Rect(100, 0, 150, 60),
	}, result.Paragraphs)
}

func TestManualSegmenter_WholePage(t *testing.T) {
	engine := &fakeEngine{out: &EngineOutput{}}
	result, err := NewManualSegmenter(engine).Segment(imaging.NewBitmap(80, 60), "0,0,-1,-1")
	require.NoError(t, err)

	assert.Equal(t, []image.Point{{80, 60}}, engine.sizes())
	assert.Equal(t, []geometry.Rectangle{geometry.Page(80, 60)}, result.Columns)
	assert.NotNil(t, result.Lines)
	assert.Empty(t, result.Lines)
	assert.Empty(t, result.Paragraphs)
}

func TestManualSegmenter_SkipsMalformed(t *testing.T) {
	engine := &fakeEngine{out: &EngineOutput{Lines: []geometry.Rectangle{geometry.Rect(0, 0, 10, 2)}}}
	result, err := NewManualSegmenter(engine).Segment(imaging.NewBitmap(80, 60), "abc,0,10,10~0,0,10,10")
	require.NoError(t, err)

	assert.Len(t, engine.images, 1)
	assert.Equal(t, []geometry.Rectangle{geometry.Rect(0, 0, 10, 2)}, result.Lines)
}

func TestManualSegmenter_NilOutput(t *testing.T) {
	result, err := NewManualSegmenter(&fakeEngine{}).Segment(imaging.NewBitmap(10, 10), "")
	require.NoError(t, err)
	assert.Empty(t, result.Lines)
}

func TestManualSegmenter_EngineError(t *testing.T) {
	boom := errors.New("engine crashed")
	engine := &fakeEngine{err: boom}

	_, err := NewManualSegmenter(engine).Segment(imaging.NewBitmap(80, 60), "0,0,40,30~40,0,80,30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "<Rectangle: 0 0 40 30>")
	assert.Len(t, engine.images, 1, "no further regions after a failure")
}
