package layout

import (
	"log/slog"
	"slices"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
	"github.com/ironsheep/page-segment-mcp/internal/logging"
)

// Result holds the regions found on a page, in raster coordinates.
// The slices are never nil, so an empty page encodes as three empty lists.
type Result struct {
	Columns    []geometry.Rectangle `json:"columns"`
	Lines      []geometry.Rectangle `json:"lines"`
	Paragraphs []geometry.Rectangle `json:"paragraphs"`
}

// EmptyResult returns a Result with all three lists present and empty.
func EmptyResult() *Result {
	return &Result{
		Columns:    make([]geometry.Rectangle, 0),
		Lines:      make([]geometry.Rectangle, 0),
		Paragraphs: make([]geometry.Rectangle, 0),
	}
}

// page is the working bitmap seen through the analysis frame.
type page struct {
	bm *imaging.Bitmap
}

func (p page) width() int  { return p.bm.Width() }
func (p page) height() int { return p.bm.Height() }

// columnSums returns the ink count of each pixel column of r, left to right.
func (p page) columnSums(r geometry.Rectangle) []int {
	return p.bm.ColumnSums(geometry.Flip(r, p.height()))
}

// rowSums returns the ink count of each pixel row of r, bottom to top.
func (p page) rowSums(r geometry.Rectangle) []int {
	sums := p.bm.RowSums(geometry.Flip(r, p.height()))
	slices.Reverse(sums)
	return sums
}

// Segment finds header lines, columns and text lines on a two-level page.
//
// bm is not modified. Lines lists header lines top down, then the lines of
// each column left to right and top down. Paragraphs is always empty in
// automatic mode. A page without ink yields an empty result; the only
// error is an invalid Params.
func Segment(bm *imaging.Bitmap, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	log := logging.Logger()

	work := bm.Clone()
	pg := page{bm: work}
	height := pg.height()

	raw := ExtractComponents(work)
	avgHeight := AverageHeight(raw)
	kept := StripNonChars(work, raw, avgHeight)
	chars := CharacterBoxes(geometry.FlipAll(kept, height))
	log.Debug("components extracted",
		slog.Int("boxes", len(raw)),
		slog.Int("stripped", len(raw)-len(kept)),
		slog.Int("characters", len(chars)),
		slog.Float64("avg_height", avgHeight))

	result := EmptyResult()
	if len(raw) == 0 {
		return result, nil
	}

	top := height
	lines := make([]geometry.Rectangle, 0)
	for i := 0; i < params.HeaderLines; i++ {
		line, ok := FindHeaderLine(chars, top, avgHeight)
		if !ok {
			log.Debug("no more header line candidates", slog.Int("found", i))
			break
		}
		lines = append(lines, line)
		top = line.Y0
	}

	cols := FindColumns(pg.columnSums(geometry.Rect(0, 0, pg.width(), top)), top, params.TargetColumns)
	log.Debug("columns found",
		slog.Int("header_lines", len(lines)),
		slog.Int("top", top),
		slog.Int("columns", len(cols)))

	idx := newBoxIndex(chars)
	for _, col := range cols {
		body := geometry.Rect(col.X0, 0, col.X1, top)
		if body.Area() < 1 {
			continue
		}
		bands := lineBands(pg.rowSums(body), body, avgHeight, params.LineHighpass)
		found := refineLines(bands, idx.overlapping(col.Grow(columnMargin, columnMargin)))
		log.Debug("column lines",
			slog.String("column", geometry.Flip(col, height).String()),
			slog.Int("bands", len(bands)),
			slog.Int("lines", len(found)))
		lines = append(lines, found...)
	}

	result.Columns = geometry.FlipAll(cols, height)
	result.Lines = geometry.FlipAll(lines, height)
	return result, nil
}
