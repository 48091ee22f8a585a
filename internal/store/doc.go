// Package store loads rasters from and saves rasters to image files.
//
// The store is the only part of imagekit that touches the file system or an
// image codec. It hands fully decoded rasters to the transform package and
// encodes the rasters it gets back.
//
// # Formats
//
// Formats are chosen by filename suffix, case-insensitively:
//   - ".jpg", ".jpeg" -> JPEG
//   - ".png" -> PNG
//   - ".bmp" -> BMP
//
// Any other suffix fails with ErrUnsupportedFormat, for loading and saving
// alike.
//
// # Errors
//
// Every failure wraps one of the sentinel errors below, so callers can use
// errors.Is regardless of how many layers re-wrapped it:
//   - ErrInvalidPath: empty path
//   - ErrNotFound: file or directory missing, or not the expected kind
//   - ErrUnsupportedFormat: suffix is not a supported format
//   - ErrDecode: file content could not be decoded
//   - ErrNilRaster: Save called with a nil raster
//   - ErrExists: Save destination already exists
//   - ErrNoParentDir: Save destination's parent directory is missing
//
// # Caching
//
// Cache wraps any Store and keeps loaded rasters in memory, keyed by path.
// Rasters are immutable, so a cached raster can be shared by every caller.
//
// # Thread Safety
//
// FileStore holds no mutable state and Cache guards its map with a
// sync.RWMutex; both are safe for concurrent use.
package store
