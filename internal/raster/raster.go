package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrInvalidSize is returned when a raster is requested with a negative
// dimension or with a pixel slice that does not match its dimensions.
var ErrInvalidSize = errors.New("invalid raster size")

// opaque is the alpha byte every stored pixel carries.
const opaque = uint32(channelMax) << alphaShift

// Raster is an immutable width x height buffer of opaque packed pixels.
//
// The zero value is a valid 0x0 raster. Raster implements image.Image so it
// can be handed directly to encoders and image libraries.
type Raster struct {
	width  int
	height int
	pix    []uint32 // row-major, len == width*height
}

// New builds a raster by calling fn once for every coordinate, row by row.
// The alpha channel of each returned pixel is forced to 0xFF. A nil fn
// yields opaque black.
//
// Returns ErrInvalidSize if width or height is negative.
func New(width, height int, fn func(x, y int) Pixel) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	pix := make([]uint32, width*height)
	if fn == nil {
		for i := range pix {
			pix[i] = opaque
		}
		return &Raster{width: width, height: height, pix: pix}, nil
	}
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			pix[row+x] = fn(x, y).Opaque().Pack()
		}
	}

	return &Raster{width: width, height: height, pix: pix}, nil
}

// FromPacked builds a raster from row-major 0xAARRGGBB values. The slice is
// copied and every value gets alpha 0xFF, so the caller keeps ownership of
// packed.
//
// Returns ErrInvalidSize if a dimension is negative or len(packed) is not
// width*height.
func FromPacked(width, height int, packed []uint32) (*Raster, error) {
	if width < 0 || height < 0 || len(packed) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", ErrInvalidSize, width, height, len(packed))
	}

	pix := make([]uint32, len(packed))
	for i, v := range packed {
		pix[i] = v | opaque
	}

	return &Raster{width: width, height: height, pix: pix}, nil
}

// FromImage copies any decoded image into a raster.
//
// Colors are read non-premultiplied and the alpha channel is dropped, so a
// translucent pixel keeps its stored color instead of being darkened. The
// image's bounds are translated so that its top-left corner becomes (0,0).
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidSize)
	}

	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	return New(w, h, func(x, y int) Pixel {
		i := src.PixOffset(x, y)
		s := src.Pix[i : i+4 : i+4]
		return Pixel{R: s[0], G: s[1], B: s[2], A: channelMax}
	})
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.width == 0 || r.height == 0
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Pixel returns the pixel at (x, y). The boolean is false, and the pixel is
// the zero value, when the coordinate is outside the raster.
func (r *Raster) Pixel(x, y int) (Pixel, bool) {
	if !r.In(x, y) {
		return Pixel{}, false
	}
	return Unpack(r.pix[y*r.width+x]), true
}

// Packed returns the 0xAARRGGBB value at (x, y), or 0 outside the raster.
func (r *Raster) Packed(x, y int) uint32 {
	if !r.In(x, y) {
		return 0
	}
	return r.pix[y*r.width+x]
}

// Sample returns the intensity at (x, y) for convolution.
//
// Coordinates outside the raster sample as 0 (zero padding). Every kernel
// goes through Sample so all of them share this one boundary policy.
func (r *Raster) Sample(x, y int) int {
	if !r.In(x, y) {
		return 0
	}
	return int(r.pix[y*r.width+x] & channelMax)
}

// Equal reports whether both rasters have the same dimensions and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.width != o.width || r.height != o.height {
		return false
	}
	for i, v := range r.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image. The rectangle always starts at (0,0).
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// At implements image.Image. Out-of-range coordinates return transparent black.
func (r *Raster) At(x, y int) color.Color {
	p, ok := r.Pixel(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return p.NRGBA()
}
