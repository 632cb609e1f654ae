package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

// PNGResult carries an encoded PNG image.
type PNGResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG result.
func EncodePNG(img image.Image) (*PNGResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}
	return &PNGResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts region from img in raster coordinates. Negative upper
// bounds mean the outer edge of the image and the region is clamped to the
// image. A scale other than 1 resizes the crop.
func Crop(img image.Image, region geometry.Rectangle, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	r := geometry.Clamp(region, bounds.Dx(), bounds.Dy())
	if r.Width() == 0 || r.Height() == 0 {
		return nil, errors.Errorf("crop region %v is empty after clamping to %dx%d",
			region, bounds.Dx(), bounds.Dy())
	}

	cropped := imaging.Crop(img, r.ImageRect().Add(bounds.Min))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, errors.Errorf("scale %.3f leaves nothing of a %dx%d crop",
				scale, cropped.Bounds().Dx(), cropped.Bounds().Dy())
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped, nil
}
