package inspect

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/imagekit/internal/raster"
)

// ImageResult contains a raster encoded for transport in a JSON response.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes r as a base64 PNG at full size.
//
// An empty raster cannot be encoded as PNG and returns an error.
func EncodePNG(r *raster.Raster) (*ImageResult, error) {
	if r == nil {
		return nil, fmt.Errorf("failed to encode image: nil raster")
	}
	return encodePNG(r)
}

// Thumbnail encodes r as a base64 PNG scaled down so that neither side
// exceeds maxSize, keeping the aspect ratio. Rasters that already fit, and
// any maxSize <= 0, are encoded at full size.
func Thumbnail(r *raster.Raster, maxSize int) (*ImageResult, error) {
	if r == nil {
		return nil, fmt.Errorf("failed to encode image: nil raster")
	}
	if maxSize <= 0 || (r.Width() <= maxSize && r.Height() <= maxSize) {
		return encodePNG(r)
	}
	return encodePNG(imaging.Fit(r, maxSize, maxSize, imaging.Lanczos))
}

func encodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
