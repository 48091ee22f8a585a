package transform

import (
	"errors"
	"fmt"

	"github.com/ironsheep/imagekit/internal/raster"
)

var (
	// ErrInvalidArgument is returned when a nil raster or collaborator is
	// passed to a transform.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedCapability is returned when a collaborator does not
	// provide the capability a transform depends on.
	ErrUnsupportedCapability = errors.New("unsupported capability")

	// ErrUnknownTransform is returned by Lookup for unregistered names.
	ErrUnknownTransform = errors.New("unknown transform")
)

// Transform maps a raster to a new raster.
type Transform interface {
	Process(src *raster.Raster) (*raster.Raster, error)
}

// Grayscale is a Transform whose every output pixel has R == G == B.
//
// IntensityOnly is a marker; implementing it is the promise that any single
// channel of the output carries the full intensity.
type Grayscale interface {
	Transform
	IntensityOnly()
}

// Func adapts an ordinary function to the Transform interface.
type Func func(src *raster.Raster) (*raster.Raster, error)

// Process calls f(src).
func (f Func) Process(src *raster.Raster) (*raster.Raster, error) {
	return f(src)
}

// Pipeline applies its stages in order, feeding each output to the next.
// A Pipeline is itself a Transform.
type Pipeline []Transform

// Process runs every stage. The first failing stage aborts the pipeline; its
// error is wrapped with the stage index.
func (p Pipeline) Process(src *raster.Raster) (*raster.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source raster is nil", ErrInvalidArgument)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty pipeline", ErrInvalidArgument)
	}

	cur := src
	for i, stage := range p {
		if stage == nil {
			return nil, fmt.Errorf("%w: pipeline stage %d is nil", ErrInvalidArgument, i)
		}
		next, err := stage.Process(cur)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// IsGrayscale reports whether every pixel of r has equal color channels.
// A nil or empty raster is trivially grayscale.
func IsGrayscale(r *raster.Raster) bool {
	if r == nil {
		return true
	}
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if p, _ := r.Pixel(x, y); !p.IsGray() {
				return false
			}
		}
	}
	return true
}
