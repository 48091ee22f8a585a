package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/imagekit/internal/raster"
)

// Sentinel errors wrapped by every store failure.
var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrNotFound          = errors.New("image not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("failed to decode image")
	ErrNilRaster         = errors.New("raster is nil")
	ErrExists            = errors.New("destination already exists")
	ErrNoParentDir       = errors.New("parent directory does not exist")
)

// Store loads and saves rasters.
type Store interface {
	// Load decodes the image file at path.
	Load(path string) (*raster.Raster, error)

	// LoadAll decodes every image file in dir, in filename order.
	LoadAll(dir string) ([]*raster.Raster, error)

	// List returns the image paths LoadAll would read, in the same order.
	List(dir string) ([]string, error)

	// Save encodes r to path. It never overwrites an existing file.
	Save(r *raster.Raster, path string) error
}

// FileStore is a Store backed by the local file system.
type FileStore struct {
	logger      *log.Logger
	jpegQuality int
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *log.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJPEGQuality sets the quality (1-100) used when saving JPEG files.
// Out-of-range values are ignored.
func WithJPEGQuality(q int) Option {
	return func(s *FileStore) {
		if q >= 1 && q <= 100 {
			s.jpegQuality = q
		}
	}
}

// NewFileStore creates a file system store.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		logger:      log.New(io.Discard),
		jpegQuality: DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the image at path into an opaque raster.
//
// # Errors
//
//   - ErrInvalidPath if path is empty
//   - ErrNotFound if path does not exist or is not a regular file
//   - ErrUnsupportedFormat if the suffix is not .jpg, .jpeg, .png or .bmp
//   - ErrDecode if the content cannot be decoded
func (s *FileStore) Load(path string) (*raster.Raster, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty image path", ErrInvalidPath)
	}

	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	r, err := raster.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	s.logger.Debug("loaded image", "path", path, "width", r.Width(), "height", r.Height())
	return r, nil
}

// List returns the paths of the image files LoadAll would read, sorted by
// filename. Subdirectories are skipped; symlinks are resolved.
//
// # Errors
//
//   - ErrInvalidPath if dir is empty
//   - ErrNotFound if dir does not exist or is not a directory
//   - ErrUnsupportedFormat if dir contains a regular file, or a symlink to
//     one, with an unsupported suffix
func (s *FileStore) List(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory path", ErrInvalidPath)
	}

	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: directory %s", ErrNotFound, dir)
	}

	// ReadDir sorts entries by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Follow symlinks the same way Load does; dangling links and
		// links to directories are skipped.
		if !e.Type().IsRegular() {
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		if _, err := FormatFromPath(path); err != nil {
			return nil, fmt.Errorf("directory %s: %w", dir, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// LoadAll decodes every image file in dir, in filename order. It fails as a
// whole if any regular file in dir is unsupported or cannot be decoded.
func (s *FileStore) LoadAll(dir string) ([]*raster.Raster, error) {
	paths, err := s.List(dir)
	if err != nil {
		return nil, err
	}

	rasters := make([]*raster.Raster, 0, len(paths))
	for _, path := range paths {
		r, err := s.Load(path)
		if err != nil {
			return nil, err
		}
		rasters = append(rasters, r)
	}
	return rasters, nil
}

// Save encodes r to path in the format named by its suffix.
//
// The file is created exclusively, so an existing file is never replaced,
// and a partially written file is removed when encoding fails.
//
// # Errors
//
//   - ErrNilRaster if r is nil
//   - ErrInvalidPath if path is empty
//   - ErrExists if path already exists
//   - ErrNoParentDir if the parent directory of path does not exist
//   - ErrUnsupportedFormat if the suffix is not .jpg, .jpeg, .png or .bmp
func (s *FileStore) Save(r *raster.Raster, path string) (err error) {
	if r == nil {
		return ErrNilRaster
	}
	if path == "" {
		return fmt.Errorf("%w: empty image path", ErrInvalidPath)
	}

	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	parent := filepath.Dir(path)
	if fi, err := os.Stat(parent); err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoParentDir, parent)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close image: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := format.encoder(s.jpegQuality)(f, r); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", format.Name, err)
	}

	s.logger.Debug("saved image", "path", path, "format", format.Name, "width", r.Width(), "height", r.Height())
	return nil
}
