package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/imagekit/internal/raster"
)

// Luminosity weights.
const (
	redWeight   = 0.21
	greenWeight = 0.72
	blueWeight  = 0.07
)

const maxChannel = 255

// Luminosity converts a raster to grayscale with the luminosity method.
//
// Each output pixel is Gray(round(0.21*R + 0.72*G + 0.07*B)). The result is
// clamped to 255 even though the weights sum to 1.00, so a change of weights
// or rounding can never overflow a channel.
//
// Luminosity has no state; the zero value is ready to use.
type Luminosity struct{}

// NewLuminosity returns a luminosity grayscale transform.
func NewLuminosity() Luminosity {
	return Luminosity{}
}

// IntensityOnly marks Luminosity as a Grayscale transform.
func (Luminosity) IntensityOnly() {}

// Process returns the grayscale version of src.
//
// Returns an error wrapping ErrInvalidArgument if src is nil.
func (Luminosity) Process(src *raster.Raster) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source raster is nil", ErrInvalidArgument)
	}

	return raster.New(src.Width(), src.Height(), func(x, y int) raster.Pixel {
		p, _ := src.Pixel(x, y)
		return raster.Gray(luma(p))
	})
}

// luma returns the clamped luminosity of p.
func luma(p raster.Pixel) uint8 {
	v := redWeight*float64(p.R) + greenWeight*float64(p.G) + blueWeight*float64(p.B)
	return clampChannel(math.Round(v))
}

// clampChannel limits a rounded, non-negative value to a channel byte.
func clampChannel(v float64) uint8 {
	if v > maxChannel {
		return maxChannel
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
