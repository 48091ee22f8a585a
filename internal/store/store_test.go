package store

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagekit/internal/raster"
)

// writeTestPNG encodes a width x height image where pixel (x,y) is the packed
// value x+y, mirroring a blue-only ramp, and returns its path.
func writeTestPNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{B: uint8(x + y), A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// testRaster builds the raster writeTestPNG encodes.
func testRaster(t *testing.T, width, height int) *raster.Raster {
	t.Helper()
	r, err := raster.New(width, height, func(x, y int) raster.Pixel {
		return raster.Pixel{B: uint8(x + y)}
	})
	require.NoError(t, err)
	return r
}

func TestFileStore_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "test.png", 10, 10)

	r, err := NewFileStore().Load(path)
	require.NoError(t, err)
	assert.True(t, testRaster(t, 10, 10).Equal(r))
}

func TestFileStore_Load_Errors(t *testing.T) {
	dir := t.TempDir()
	textFile := filepath.Join(dir, "test.text")
	require.NoError(t, os.WriteFile(textFile, []byte("hello"), 0o644))
	bogus := filepath.Join(dir, "bogus.png")
	require.NoError(t, os.WriteFile(bogus, []byte("not an image"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrInvalidPath},
		{"missing file", filepath.Join(dir, "noFile.jpg"), ErrNotFound},
		{"directory", dir, ErrNotFound},
		{"wrong format", textFile, ErrUnsupportedFormat},
		{"undecodable", bogus, ErrDecode},
	}

	s := NewFileStore()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Load(tt.path)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, r)
		})
	}
}

func TestFileStore_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "test2.png", 4, 3)
	writeTestPNG(t, dir, "test1.png", 10, 10)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	rasters, err := NewFileStore().LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, rasters, 2)

	// Filename order: test1 before test2.
	assert.True(t, testRaster(t, 10, 10).Equal(rasters[0]))
	assert.True(t, testRaster(t, 4, 3).Equal(rasters[1]))
}

func TestFileStore_LoadAll_Errors(t *testing.T) {
	s := NewFileStore()

	_, err := s.LoadAll("")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.LoadAll(filepath.Join(t.TempDir(), "testDir"))
	assert.ErrorIs(t, err, ErrNotFound)

	mixed := t.TempDir()
	writeTestPNG(t, mixed, "ok.png", 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(mixed, "notes.txt"), nil, 0o644))
	_, err = s.LoadAll(mixed)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "broken.bmp"), []byte("BM"), 0o644))
	_, err = s.LoadAll(broken)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFileStore_LoadAll_EmptyDir(t *testing.T) {
	rasters, err := NewFileStore().LoadAll(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rasters)
}

func TestFileStore_List(t *testing.T) {
	dir := t.TempDir()
	b := writeTestPNG(t, dir, "b.PNG", 1, 1)
	a := writeTestPNG(t, dir, "a.png", 1, 1)

	paths, err := NewFileStore().List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)
}

func TestFileStore_ListSymlinks(t *testing.T) {
	targets := t.TempDir()
	img := writeTestPNG(t, targets, "real.png", 2, 2)
	notes := filepath.Join(targets, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hello"), 0o644))

	s := NewFileStore()

	t.Run("image link is listed", func(t *testing.T) {
		dir := t.TempDir()
		link := filepath.Join(dir, "link.png")
		require.NoError(t, os.Symlink(img, link))

		paths, err := s.List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{link}, paths)

		rasters, err := s.LoadAll(dir)
		require.NoError(t, err)
		require.Len(t, rasters, 1)
		assert.True(t, testRaster(t, 2, 2).Equal(rasters[0]))
	})

	t.Run("unsupported link fails", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, dir, "ok.png", 1, 1)
		require.NoError(t, os.Symlink(notes, filepath.Join(dir, "notes.txt")))

		_, err := s.List(dir)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("dangling and directory links are skipped", func(t *testing.T) {
		dir := t.TempDir()
		ok := writeTestPNG(t, dir, "ok.png", 1, 1)
		require.NoError(t, os.Symlink(filepath.Join(targets, "gone.png"), filepath.Join(dir, "dangling.png")))
		require.NoError(t, os.Symlink(targets, filepath.Join(dir, "sub")))

		paths, err := s.List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{ok}, paths)
	})
}

func TestFileStore_LoadTruncatedKeepsCause(t *testing.T) {
	dir := t.TempDir()
	full, err := os.ReadFile(writeTestPNG(t, dir, "full.png", 4, 4))
	require.NoError(t, err)

	// Signature plus a partial IHDR chunk.
	path := filepath.Join(dir, "truncated.png")
	require.NoError(t, os.WriteFile(path, full[:20], 0o644))

	_, err = NewFileStore().Load(path)
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Stat(path)
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFileStore_SaveRoundTrip(t *testing.T) {
	src := testRaster(t, 10, 10)

	for _, name := range []string{"out.png", "out.bmp", "OUT.PNG"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			s := NewFileStore()

			require.NoError(t, s.Save(src, path))
			got, err := s.Load(path)
			require.NoError(t, err)
			assert.True(t, src.Equal(got))
		})
	}
}

func TestFileStore_SaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	s := NewFileStore(WithJPEGQuality(100))

	require.NoError(t, s.Save(testRaster(t, 16, 8), path))

	// JPEG is lossy; only the geometry is exact.
	got, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Width())
	assert.Equal(t, 8, got.Height())
}

func TestFileStore_Save_Errors(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestPNG(t, dir, "test.png", 1, 1)
	src := testRaster(t, 2, 2)

	tests := []struct {
		name   string
		raster *raster.Raster
		path   string
		want   error
	}{
		{"nil raster", nil, filepath.Join(dir, "a.png"), ErrNilRaster},
		{"empty path", src, "", ErrInvalidPath},
		{"already exists", src, existing, ErrExists},
		{"wrong format", src, filepath.Join(dir, "test.fake"), ErrUnsupportedFormat},
		{"gif not supported", src, filepath.Join(dir, "test.gif"), ErrUnsupportedFormat},
		{"no parent dir", src, filepath.Join(dir, "there", "is", "no", "way", "test.png"), ErrNoParentDir},
	}

	s := NewFileStore()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Save(tt.raster, tt.path), tt.want)
		})
	}

	// The existing file is untouched.
	r, err := s.Load(existing)
	require.NoError(t, err)
	assert.True(t, testRaster(t, 1, 1).Equal(r))
}

func TestFileStore_SaveEncodeFailureRemovesFile(t *testing.T) {
	// PNG cannot encode a zero-sized image.
	empty, err := raster.New(0, 0, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.png")
	require.Error(t, NewFileStore().Save(empty, path))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial file should be removed")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"a.jpg", "jpeg", true},
		{"a.JPEG", "jpeg", true},
		{"dir/a.png", "png", true},
		{"a.bmp", "bmp", true},
		{"a.gif", "", false},
		{"a.tiff", "", false},
		{"apng", "", false},
		{"a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := FormatFromPath(tt.path)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				assert.False(t, IsSupported(tt.path))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name)
			assert.True(t, IsSupported(tt.path))
		})
	}
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "info.png", 7, 5)

	info, err := Stat(path)
	require.NoError(t, err)
	assert.Equal(t, 7, info.Width)
	assert.Equal(t, 5, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "png", info.Encoding)
	assert.Positive(t, info.FileSizeBytes)

	_, err = Stat(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, ErrNotFound)
}
