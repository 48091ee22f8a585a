package inspect

import (
	"errors"
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/imagekit/internal/raster"
)

// ErrOutOfBounds is returned when a coordinate lies outside the raster.
var ErrOutOfBounds = errors.New("coordinates outside raster bounds")

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains the color of one pixel in multiple representations.
type ColorResult struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Hex       string   `json:"hex"`    // "#RRGGBB"
	Packed    string   `json:"packed"` // "0xAARRGGBB", alpha is always FF
	RGB       RGBColor `json:"rgb"`
	HSL       HSLColor `json:"hsl"`
	Intensity uint8    `json:"intensity"` // Value the edge detector reads
	Gray      bool     `json:"gray"`      // R == G == B
}

// SampleColor returns the color of the pixel at (x, y).
//
// Returns an error wrapping ErrOutOfBounds if (x, y) is outside r, including
// every coordinate of an empty or nil raster.
func SampleColor(r *raster.Raster, x, y int) (*ColorResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: (%d,%d) in nil raster", ErrOutOfBounds, x, y)
	}

	p, ok := r.Pixel(x, y)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, r.Width(), r.Height())
	}

	c := colorful.Color{
		R: float64(p.R) / 255,
		G: float64(p.G) / 255,
		B: float64(p.B) / 255,
	}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:         x,
		Y:         y,
		Hex:       strings.ToUpper(c.Hex()),
		Packed:    fmt.Sprintf("0x%08X", p.Pack()),
		RGB:       RGBColor{R: p.R, G: p.G, B: p.B},
		HSL:       toHSL(h, s, l),
		Intensity: p.Intensity(),
		Gray:      p.IsGray(),
	}, nil
}

// toHSL rounds go-colorful's floating point HSL to whole degrees and percent.
func toHSL(h, s, l float64) HSLColor {
	if math.IsNaN(h) {
		h = 0
	}
	hue := int(math.Round(h)) % 360
	return HSLColor{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
