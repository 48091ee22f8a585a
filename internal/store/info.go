package store

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// Info contains metadata about an image file.
//
// Stat fills it from the file header only; the pixels are not decoded.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format selected by the file suffix: "jpeg", "png" or "bmp".
	Format string `json:"format"`

	// Encoding is the format detected from the file contents. It differs
	// from Format when a file carries the wrong suffix.
	Encoding string `json:"encoding"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Stat returns metadata about the image at path.
//
// Returns the same errors as FileStore.Load.
func Stat(path string) (*Info, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty image path", ErrInvalidPath)
	}

	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, encoding, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return &Info{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format.Name,
		Encoding:      encoding,
		FileSizeBytes: fi.Size(),
	}, nil
}
