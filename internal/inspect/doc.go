// Package inspect reports on rasters for human and tool consumers: the color
// of a single pixel in several notations, and PNG encodings of whole rasters
// for embedding in JSON responses.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner, matching
// package raster. Valid X values are 0 to width-1 and valid Y values are 0 to
// height-1.
package inspect
