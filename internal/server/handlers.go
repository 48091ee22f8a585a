package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/imagekit/internal/batch"
	"github.com/ironsheep/imagekit/internal/inspect"
	"github.com/ironsheep/imagekit/internal/raster"
	"github.com/ironsheep/imagekit/internal/store"
	"github.com/ironsheep/imagekit/internal/transform"
)

// errInvalidParams marks tool failures caused by the request rather than by
// the image or the file system.
var errInvalidParams = errors.New("invalid params")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_grayscale").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed or missing arguments and unknown tools return code -32602; any
// other tool failure returns code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "err", err)
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Transforms
	case "image_grayscale":
		return s.handleImageTransform(args, "grayscale")
	case "image_edge_detect":
		return s.handleImageTransform(args, "sobel")
	case "image_list_transforms":
		return map[string]interface{}{"transforms": transform.Names()}, nil

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Batch Operations
	case "image_process_directory":
		return s.handleImageProcessDirectory(ctx, args)

	// Cache
	case "image_cache_clear":
		return s.handleImageCacheClear(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidParams, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Absent arguments decode as
// an empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

func requireArg(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: missing required argument %q", errInvalidParams, name)
	}
	return nil
}

// lookupTransform resolves a user-supplied transform name.
func lookupTransform(name string) (transform.Transform, error) {
	t, err := transform.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return t, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArg("path", a.Path); err != nil {
		return nil, err
	}
	if _, err := s.images.Load(a.Path); err != nil {
		return nil, err
	}
	return store.Stat(a.Path)
}

// DimensionsResult contains image dimensions.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArg("path", a.Path); err != nil {
		return nil, err
	}
	r, err := s.images.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: r.Width(), Height: r.Height()}, nil
}

// === Transform Handlers ===

type imageTransformArgs struct {
	Path           string `json:"path"`
	OutputPath     string `json:"output_path"`
	MaxPreviewSize int    `json:"max_preview_size"`
}

// TransformResult is returned by the image_grayscale and image_edge_detect
// tools.
type TransformResult struct {
	Transform  string `json:"transform"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path,omitempty"`

	// Image is the result as PNG, possibly scaled down; nil for an empty
	// image.
	Image *inspect.ImageResult `json:"image,omitempty"`
}

func (s *Server) handleImageTransform(args json.RawMessage, name string) (interface{}, error) {
	var a imageTransformArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArg("path", a.Path); err != nil {
		return nil, err
	}

	t, err := lookupTransform(name)
	if err != nil {
		return nil, err
	}
	src, err := s.images.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dst, err := t.Process(src)
	if err != nil {
		return nil, err
	}

	result := &TransformResult{
		Transform: name,
		Width:     dst.Width(),
		Height:    dst.Height(),
	}
	if a.OutputPath != "" {
		if err := s.files.Save(dst, a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
	}
	if !dst.Empty() {
		if result.Image, err = inspect.Thumbnail(dst, a.MaxPreviewSize); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path      string `json:"path"`
	X         *int   `json:"x"`
	Y         *int   `json:"y"`
	Transform string `json:"transform"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArg("path", a.Path); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("%w: x and y are required", errInvalidParams)
	}

	r, err := s.images.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Transform != "" {
		if r, err = s.applyNamed(r, a.Transform); err != nil {
			return nil, err
		}
	}
	return inspect.SampleColor(r, *a.X, *a.Y)
}

func (s *Server) applyNamed(r *raster.Raster, name string) (*raster.Raster, error) {
	t, err := lookupTransform(name)
	if err != nil {
		return nil, err
	}
	return t.Process(r)
}

// === Batch Operation Handlers ===

type imageProcessDirectoryArgs struct {
	InputDir  string  `json:"input_dir"`
	OutputDir string  `json:"output_dir"`
	Transform string  `json:"transform"`
	Suffix    *string `json:"suffix"`
}

func (s *Server) handleImageProcessDirectory(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageProcessDirectoryArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArg("input_dir", a.InputDir); err != nil {
		return nil, err
	}
	if err := requireArg("output_dir", a.OutputDir); err != nil {
		return nil, err
	}
	if a.Transform == "" {
		a.Transform = "sobel"
	}

	t, err := lookupTransform(a.Transform)
	if err != nil {
		return nil, err
	}
	suffix := s.suffix
	if a.Suffix != nil {
		suffix = *a.Suffix
	}

	runner := &batch.Runner{
		Store:     s.files,
		Transform: t,
		Workers:   s.workers,
		Suffix:    suffix,
		Logger:    s.logger,
	}
	return runner.Run(ctx, a.InputDir, a.OutputDir)
}

// === Cache Handlers ===

// CacheClearResult reports what image_cache_clear removed.
type CacheClearResult struct {
	Cleared   string `json:"cleared"`
	Remaining int    `json:"remaining"`
}

func (s *Server) handleImageCacheClear(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return &CacheClearResult{Cleared: "none"}, nil
	}
	if a.Path != "" {
		s.cache.Evict(a.Path)
		return &CacheClearResult{Cleared: a.Path, Remaining: s.cache.Len()}, nil
	}
	s.cache.Clear()
	return &CacheClearResult{Cleared: "all"}, nil
}
