package ocr

import (
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
	"github.com/ironsheep/page-segment-mcp/internal/layout"
)

// ErrNoLayout is returned when there is nothing for Tesseract to analyse.
var ErrNoLayout = errors.New("no layout to analyse")

// Options configures a Tesseract client.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "deu". The
	// matching traineddata file must be installed.
	Language string

	// TessdataPrefix overrides the directory Tesseract loads traineddata
	// from. Empty means the library default.
	TessdataPrefix string
}

func (o Options) newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if o.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(o.TessdataPrefix); err != nil {
			client.Close()
			return nil, errors.Wrap(err, "failed to set tessdata prefix")
		}
	}
	if o.Language != "" {
		if err := client.SetLanguage(o.Language); err != nil {
			client.Close()
			return nil, errors.Wrap(err, "failed to set language")
		}
	}
	return client, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}
	return buf.Bytes(), nil
}

// TesseractEngine is a layout.Engine backed by Tesseract's page layout
// analysis. Text lines come from the RIL_TEXTLINE level and paragraphs
// from RIL_PARA.
//
// Each call creates its own client, so one engine may be shared between
// goroutines.
type TesseractEngine struct {
	opts Options
}

// NewTesseractEngine returns an engine using opts.
func NewTesseractEngine(opts Options) *TesseractEngine {
	return &TesseractEngine{opts: opts}
}

// Segment implements layout.Engine.
func (e *TesseractEngine) Segment(img image.Image) (*layout.EngineOutput, error) {
	if img.Bounds().Empty() {
		return nil, ErrNoLayout
	}
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	client, err := e.opts.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return nil, errors.Wrap(err, "failed to set image")
	}

	lines, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get text lines")
	}
	paragraphs, err := client.GetBoundingBoxes(gosseract.RIL_PARA)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paragraphs")
	}

	return &layout.EngineOutput{
		Lines:      boxesToRects(lines),
		Paragraphs: boxesToRects(paragraphs),
	}, nil
}

// boxesToRects converts Tesseract boxes to rectangles, skipping boxes with
// no area. Boxes are relative to the top-left of the encoded image.
func boxesToRects(boxes []gosseract.BoundingBox) []geometry.Rectangle {
	rects := make([]geometry.Rectangle, 0, len(boxes))
	for _, b := range boxes {
		if b.Box.Empty() {
			continue
		}
		rects = append(rects, geometry.FromImageRect(b.Box))
	}
	return rects
}

// LineText is the recognised text of one line.
type LineText struct {
	// Box is the line in raster coordinates of the page.
	Box geometry.Rectangle `json:"box"`

	// Text is the recognised text without the trailing newline.
	Text string `json:"text"`

	// Confidence is the mean word confidence, 0.0 to 1.0.
	Confidence float64 `json:"confidence"`
}

// RecognizeLines runs Tesseract in single-line mode over every line of a
// segmentation result and returns the text in the same order. Lines are
// clipped to the page; a line with no pixels on the page gets empty text.
func RecognizeLines(img image.Image, lines []geometry.Rectangle, opts Options) ([]LineText, error) {
	client, err := opts.newClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return nil, errors.Wrap(err, "failed to set page segmentation mode")
	}

	bounds := img.Bounds()
	out := make([]LineText, 0, len(lines))
	for _, line := range lines {
		result := LineText{Box: line}
		r := line.ImageRect().Add(bounds.Min).Intersect(bounds)
		if r.Empty() {
			out = append(out, result)
			continue
		}

		data, err := encodePNG(imaging.Crop(img, r))
		if err != nil {
			return nil, err
		}
		if err := client.SetImageFromBytes(data); err != nil {
			return nil, errors.Wrapf(err, "failed to set image for line %v", line)
		}
		text, err := client.Text()
		if err != nil {
			return nil, errors.Wrapf(err, "OCR failed for line %v", line)
		}
		result.Text = cleanLine(text)

		if words, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
			result.Confidence = meanConfidence(words)
		}
		out = append(out, result)
	}
	return out, nil
}

// cleanLine joins Tesseract's output for a single line onto one line.
func cleanLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// meanConfidence averages the confidence of non-empty words, scaled to
// 0.0-1.0. No words means zero.
func meanConfidence(words []gosseract.BoundingBox) float64 {
	sum, n := 0.0, 0
	for _, w := range words {
		if strings.TrimSpace(w.Word) == "" {
			continue
		}
		sum += w.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) / 100.0
}

// Info describes the OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
}

// GetInfo reports the linked Tesseract version.
func GetInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	return Info{
		Available: version != "",
		Version:   version,
		Backend:   "gosseract",
	}
}
