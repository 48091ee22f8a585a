// Package transform implements the pixel transforms of imagekit.
//
// Every transform satisfies one capability:
//
//	Process(src *raster.Raster) (*raster.Raster, error)
//
// Process is a pure function of its input. It allocates and returns a new
// raster of the same dimensions and never mutates src, so transforms can be
// chained freely (see Pipeline) and called concurrently on different rasters.
//
// # Transforms
//
//   - Luminosity: converts RGB to luminance, 0.21*R + 0.72*G + 0.07*B,
//     rounded and stored as R=G=B=luma.
//   - Sobel: runs a grayscale stage, then a 3x3 Sobel convolution with zero
//     padding at the borders, storing R=G=B=round(sqrt(Gx² + Gy²)) clamped
//     to 255.
//
// # Capabilities
//
// The Sobel convolution reads a single channel of each pixel, so it only
// accepts a stage that implements Grayscale. NewSobel enforces this at compile
// time; NewSobelFrom checks it at run time for stages obtained as a plain
// Transform and fails with ErrUnsupportedCapability.
//
// # Errors
//
//   - ErrInvalidArgument: nil raster or nil collaborator
//   - ErrUnsupportedCapability: the collaborator is not a grayscale stage
//   - ErrUnknownTransform: Lookup received a name it does not know
//
// Errors from a wrapped stage are returned unchanged (wrapped with %w), and a
// failed Process never returns a partial raster.
package transform
