// Package server implements the MCP (Model Context Protocol) server for the
// imagekit transforms.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Transforms:
//   - image_grayscale: Luminosity grayscale, returned as PNG
//   - image_edge_detect: Sobel edge map, returned as PNG
//   - image_list_transforms: Names accepted by the tools below
//
// Color Operations:
//   - image_sample_color: Get color at pixel, optionally after a transform
//
// Batch Operations:
//   - image_process_directory: Transform every image in a directory
//
// Cache:
//   - image_cache_clear: Drop decoded images
//
// # Image Caching
//
// When enabled, decoded images are cached by path and reused across tool
// calls. Directory processing bypasses the cache.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: the request line is not valid JSON
//   - -32601: unknown method
//   - -32602: unknown tool, or missing or malformed arguments
//   - -32000: the tool ran and failed (missing file, unsupported format, ...)
//
// The data field carries the Go error string.
//
// # Usage
//
//	srv := server.New(server.Options{Cache: true, Logger: logger})
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    return err
//	}
package server
