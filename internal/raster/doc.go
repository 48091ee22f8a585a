// Package raster provides the immutable pixel buffer that every transform in
// imagekit reads and produces.
//
// A Raster is a width x height grid of opaque RGB pixels stored in packed
// 0xAARRGGBB form. The alpha byte is always 0xFF: constructors force opacity,
// so a raster built from a translucent source keeps its color channels and
// drops transparency, exactly like an opaque RGB buffer would.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position, valid range 0 to Width()-1
//   - Y: vertical position, valid range 0 to Height()-1
//
// # Immutability
//
// Rasters have no exported mutators. Pixels are written once, inside a
// constructor, and only at in-range coordinates. Reads outside the raster are
// defined: Pixel reports false and Sample returns 0. This zero-padding rule is
// the boundary policy used by every convolution in the transform package.
//
// # Thread Safety
//
// Because a Raster never changes after construction, it is safe to read from
// any number of goroutines and to share between caches and pipelines.
package raster
