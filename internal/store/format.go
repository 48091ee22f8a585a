package store

import (
	"fmt"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp" // BMP decoder
)

// DefaultJPEGQuality is the JPEG quality used when none is configured.
const DefaultJPEGQuality = 95

// Format is a supported image format.
type Format struct {
	// Name is the lower-case format name: "jpeg", "png" or "bmp".
	Name string

	kind imaging.Format
}

var supported = map[imaging.Format]string{
	imaging.JPEG: "jpeg",
	imaging.PNG:  "png",
	imaging.BMP:  "bmp",
}

// FormatFromPath returns the format selected by the suffix of path.
//
// Returns an error wrapping ErrUnsupportedFormat when the suffix is missing
// or names a format other than JPEG, PNG or BMP.
func FormatFromPath(path string) (Format, error) {
	kind, err := imaging.FormatFromFilename(path)
	if err != nil {
		return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	name, ok := supported[kind]
	if !ok {
		return Format{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, path, strings.ToLower(kind.String()))
	}
	return Format{Name: name, kind: kind}, nil
}

// IsSupported reports whether path has a supported image suffix.
func IsSupported(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// encoder returns the bild encoder for f.
func (f Format) encoder(jpegQuality int) imgio.Encoder {
	switch f.kind {
	case imaging.PNG:
		return imgio.PNGEncoder()
	case imaging.BMP:
		return imgio.BMPEncoder()
	default:
		return imgio.JPEGEncoder(jpegQuality)
	}
}
