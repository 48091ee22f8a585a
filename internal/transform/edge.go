package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/imagekit/internal/raster"
)

// kernel is a 3x3 weight matrix indexed [dy+1][dx+1].
type kernel [3][3]int

var (
	sobelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	sobelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel detects edges by computing the Sobel gradient magnitude of a
// grayscale version of its input.
//
// The grayscale stage is injected at construction and is the only state a
// Sobel holds, so one instance can serve concurrent callers.
type Sobel struct {
	gray Grayscale
}

// NewSobel returns a Sobel edge detector that grays its input with g.
//
// Returns an error wrapping ErrInvalidArgument if g is nil.
func NewSobel(g Grayscale) (*Sobel, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: grayscale stage is nil", ErrInvalidArgument)
	}
	return &Sobel{gray: g}, nil
}

// NewSobelFrom is NewSobel for a stage only known as a Transform.
//
// Returns an error wrapping ErrInvalidArgument if t is nil, or
// ErrUnsupportedCapability if t does not implement Grayscale.
func NewSobelFrom(t Transform) (*Sobel, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: grayscale stage is nil", ErrInvalidArgument)
	}
	g, ok := t.(Grayscale)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not produce grayscale output", ErrUnsupportedCapability, t)
	}
	return NewSobel(g)
}

// Process returns the edge map of src.
//
// # Algorithm
//
// Process grays src with the injected stage, then convolves the 3x3
// neighborhood of every gray pixel with the horizontal and vertical Sobel
// kernels:
//
//	Gx: -1  0  1    Gy: -1 -2 -1
//	    -2  0  2         0  0  0
//	    -1  0  1         1  2  1
//
// and stores Gray(min(255, round(sqrt(Gx² + Gy²)))).
//
// Neighbors outside the raster count as intensity 0 (zero padding, not edge
// replication), which darkens gradients along the border. A 1x1 raster
// therefore always maps to 0, and an empty raster maps to an empty raster.
//
// Returns an error wrapping ErrInvalidArgument if src is nil. Errors from the
// grayscale stage are returned wrapped and unchanged.
func (s *Sobel) Process(src *raster.Raster) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source raster is nil", ErrInvalidArgument)
	}

	gray, err := s.gray.Process(src)
	if err != nil {
		return nil, fmt.Errorf("grayscale stage: %w", err)
	}

	return raster.New(gray.Width(), gray.Height(), func(x, y int) raster.Pixel {
		return raster.Gray(magnitude(gray, x, y))
	})
}

// magnitude returns the clamped Sobel gradient magnitude at (x, y).
func magnitude(r *raster.Raster, x, y int) uint8 {
	gx := convolve(r, x, y, &sobelX)
	gy := convolve(r, x, y, &sobelY)
	return clampChannel(math.Round(math.Sqrt(float64(gx*gx + gy*gy))))
}

// convolve applies k to the neighborhood centered on (x, y).
func convolve(r *raster.Raster, x, y int, k *kernel) int {
	sum := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if w := k[dy+1][dx+1]; w != 0 {
				sum += w * r.Sample(x+dx, y+dy)
			}
		}
	}
	return sum
}
