package server

import "github.com/ironsheep/imagekit/internal/transform"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file (.jpg, .jpeg, .png or .bmp)",
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Optional path to save the result to. The format follows the suffix; existing files are never overwritten.",
}

var previewProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Optional maximum width/height of the returned PNG. 0 returns the full-size result.",
	"default":     0,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	transformNames := transform.Names()

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and size. The decoded image is kept for subsequent operations on the same path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Transforms
		{
			Name:        "image_grayscale",
			Description: "Convert an image to grayscale using luminosity weights (0.21 R + 0.72 G + 0.07 B) and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":             pathProperty,
					"output_path":      outputPathProperty,
					"max_preview_size": previewProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_edge_detect",
			Description: "Sobel edge detection. Converts the image to grayscale, computes the gradient magnitude of every pixel and returns the edge map as base64-encoded PNG. Bright pixels mark strong edges.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":             pathProperty,
					"output_path":      outputPathProperty,
					"max_preview_size": previewProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_list_transforms",
			Description: "List the transform names accepted by image_sample_color and image_process_directory.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, optionally after applying a transform.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"transform": map[string]interface{}{
						"type":        "string",
						"enum":        transformNames,
						"description": "Optional transform to apply before sampling",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Batch Operations
		{
			Name:        "image_process_directory",
			Description: "Apply a transform to every image in a directory and save the results to another directory. Every regular file in the input directory must be a supported image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input_dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory to read",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to an existing directory to write to",
					},
					"transform": map[string]interface{}{
						"type":        "string",
						"enum":        transformNames,
						"description": "Transform to apply (default sobel)",
						"default":     "sobel",
					},
					"suffix": map[string]interface{}{
						"type":        "string",
						"description": "Optional text appended to each output file name before the extension",
					},
				},
				"required": []string{"input_dir", "output_dir"},
			},
		},

		// Cache
		{
			Name:        "image_cache_clear",
			Description: "Drop decoded images kept in memory, so that changed files are read again. Clears one path when given, otherwise everything.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to evict",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
