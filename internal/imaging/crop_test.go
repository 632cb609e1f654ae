package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/page-segment-mcp/internal/geometry"
)

func createSolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createGrayPage(100, 100, geometry.Rect(10, 10, 20, 20))

	cropped, err := Crop(img, geometry.Rect(10, 10, 60, 40), 1.0)
	require.NoError(t, err)
	assert.Equal(t, 50, cropped.Bounds().Dx())
	assert.Equal(t, 30, cropped.Bounds().Dy())

	r, _, _, _ := cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y).RGBA()
	assert.Equal(t, uint32(0), r, "crop origin should land on the black box")
}

func TestCrop_NegativeMeansOuterBound(t *testing.T) {
	img := createSolidImage(80, 60, color.White)

	cropped, err := Crop(img, geometry.Rect(20, 10, -1, -1), 1.0)
	require.NoError(t, err)
	assert.Equal(t, 60, cropped.Bounds().Dx())
	assert.Equal(t, 50, cropped.Bounds().Dy())
}

func TestCrop_ClampsOversizedRegion(t *testing.T) {
	img := createSolidImage(50, 50, color.White)

	cropped, err := Crop(img, geometry.Rect(-10, -10, 500, 500), 1.0)
	require.NoError(t, err)
	assert.Equal(t, 50, cropped.Bounds().Dx())
	assert.Equal(t, 50, cropped.Bounds().Dy())
}

func TestCrop_EmptyRegion(t *testing.T) {
	img := createSolidImage(50, 50, color.White)

	_, err := Crop(img, geometry.Rect(30, 30, 10, 10), 1.0)
	assert.Error(t, err)
}

func TestCrop_WithScale(t *testing.T) {
	img := createSolidImage(100, 100, color.RGBA{255, 0, 0, 255})

	up, err := Crop(img, geometry.Rect(0, 0, 50, 50), 2.0)
	require.NoError(t, err)
	assert.Equal(t, 100, up.Bounds().Dx())

	down, err := Crop(img, geometry.Rect(0, 0, 100, 100), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 50, down.Bounds().Dx())
}

func TestEncodePNG(t *testing.T) {
	result, err := EncodePNG(createSolidImage(12, 8, color.White))
	require.NoError(t, err)

	assert.Equal(t, 12, result.Width)
	assert.Equal(t, 8, result.Height)
	assert.Equal(t, "image/png", result.MimeType)

	_, err = base64.StdEncoding.DecodeString(result.ImageBase64)
	assert.NoError(t, err)
}
