package layout

import (
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/imaging"
	"github.com/ironsheep/page-segment-mcp/internal/logging"
)

// Separators of the region string grammar "x0,y0,x1,y1~x0,y0,x1,y1".
const (
	regionSeparator = "~"
	coordSeparator  = ","
)

// ParseRegions parses a region string. Groups that are not exactly four
// integers are skipped. Coordinates are returned as written; negative
// upper bounds are resolved later by geometry.Clamp.
func ParseRegions(s string) []geometry.Rectangle {
	regions := make([]geometry.Rectangle, 0)
	if strings.TrimSpace(s) == "" {
		return regions
	}
	for _, group := range strings.Split(s, regionSeparator) {
		r, err := parseRegion(group)
		if err != nil {
			logging.Logger().Debug("skipping region", slog.String("group", group), slog.String("reason", err.Error()))
			continue
		}
		regions = append(regions, r)
	}
	return regions
}

func parseRegion(group string) (geometry.Rectangle, error) {
	fields := strings.Split(group, coordSeparator)
	if len(fields) != 4 {
		return geometry.Rectangle{}, errors.Errorf("want 4 coordinates, got %d", len(fields))
	}
	var pts [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return geometry.Rectangle{}, errors.Wrapf(err, "coordinate %d", i)
		}
		pts[i] = v
	}
	return geometry.Rect(pts[0], pts[1], pts[2], pts[3]), nil
}

// EngineOutput is what an Engine finds in one region, in the region's own
// top-left pixel coordinates.
type EngineOutput struct {
	Lines      []geometry.Rectangle
	Paragraphs []geometry.Rectangle
}

// Engine is an external full-page layout analyser.
//
// Segment receives a two-level image, black ink on white, whose bounds
// start at (0,0). Implementations need not be safe for concurrent use.
type Engine interface {
	Segment(img image.Image) (*EngineOutput, error)
}

// ManualSegmenter runs an Engine over caller-chosen regions of a page.
type ManualSegmenter struct {
	engine Engine
}

// NewManualSegmenter returns a segmenter backed by engine.
func NewManualSegmenter(engine Engine) *ManualSegmenter {
	return &ManualSegmenter{engine: engine}
}

// Regions resolves a region string against a width x height page.
//
// Each region is clamped in raster coordinates, which turns negative upper
// bounds into the page edge, then flipped into the analysis frame and
// clamped again. Regions with no area are dropped. When nothing usable is
// left the whole page is the single region. Regions come back in the
// analysis frame.
func Regions(s string, width, height int) []geometry.Rectangle {
	out := make([]geometry.Rectangle, 0)
	for _, r := range ParseRegions(s) {
		a := geometry.Clamp(geometry.Flip(geometry.Clamp(r, width, height), height), width, height)
		if a.Area() == 0 {
			logging.Logger().Debug("skipping empty region", slog.String("region", r.String()))
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		out = append(out, geometry.Page(width, height))
	}
	return out
}

// toPage moves a rectangle reported by the engine for region (analysis
// frame) into the page's analysis frame.
func toPage(local, region geometry.Rectangle) geometry.Rectangle {
	return geometry.Flip(local, region.Height()).Translate(region.X0, region.Y0)
}

// Segment runs the engine over every region of s and merges the results.
//
// Columns holds the regions that were processed. Lines and Paragraphs
// hold the engine's rectangles moved into page coordinates, region by
// region in the order given. An engine error aborts the call.
func (m *ManualSegmenter) Segment(bm *imaging.Bitmap, s string) (*Result, error) {
	width, height := bm.Width(), bm.Height()
	regions := Regions(s, width, height)
	log := logging.Logger()

	var lines, paragraphs []geometry.Rectangle
	for _, region := range regions {
		raster := geometry.Flip(region, height)
		out, err := m.engine.Segment(bm.SubImage(raster).Image())
		if err != nil {
			return nil, errors.Wrapf(err, "layout engine failed on region %v", raster)
		}
		if out == nil {
			continue
		}
		for _, l := range out.Lines {
			lines = append(lines, toPage(l, region))
		}
		for _, p := range out.Paragraphs {
			paragraphs = append(paragraphs, toPage(p, region))
		}
		log.Debug("region segmented",
			slog.String("region", raster.String()),
			slog.Int("lines", len(out.Lines)),
			slog.Int("paragraphs", len(out.Paragraphs)))
	}

	result := EmptyResult()
	result.Columns = geometry.FlipAll(regions, height)
	result.Lines = geometry.FlipAll(lines, height)
	result.Paragraphs = geometry.FlipAll(paragraphs, height)
	return result, nil
}
