package raster

import "image/color"

const (
	alphaShift = 24
	redShift   = 16
	greenShift = 8
	channelMax = 0xFF
)

// Pixel is a single RGBA pixel with 8-bit channels.
//
// Pixel isolates the bit layout of the packed 0xAARRGGBB form from the
// algorithms that work on color values.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Gray returns an opaque pixel with all three color channels set to v.
func Gray(v uint8) Pixel {
	return Pixel{R: v, G: v, B: v, A: channelMax}
}

// Unpack splits a packed 0xAARRGGBB value into its channels.
func Unpack(v uint32) Pixel {
	return Pixel{
		R: uint8((v >> redShift) & channelMax),
		G: uint8((v >> greenShift) & channelMax),
		B: uint8(v & channelMax),
		A: uint8((v >> alphaShift) & channelMax),
	}
}

// Pack returns the pixel as a 0xAARRGGBB value.
func (p Pixel) Pack() uint32 {
	return uint32(p.A)<<alphaShift | uint32(p.R)<<redShift | uint32(p.G)<<greenShift | uint32(p.B)
}

// Opaque returns p with alpha forced to 0xFF.
func (p Pixel) Opaque() Pixel {
	p.A = channelMax
	return p
}

// Intensity returns the single-channel value a convolution samples.
//
// On gray pixels every channel holds the same value; the blue byte is the
// one read, so a non-gray pixel contributes only its blue channel.
func (p Pixel) Intensity() uint8 {
	return p.B
}

// IsGray reports whether the three color channels are equal.
func (p Pixel) IsGray() bool {
	return p.R == p.G && p.G == p.B
}

// NRGBA converts the pixel to the standard library color type.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}
