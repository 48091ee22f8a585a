package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imagekit/internal/raster"
)

func TestLuminosity_NilSource(t *testing.T) {
	out, err := NewLuminosity().Process(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, out)
}

func TestLuminosity_Ramp(t *testing.T) {
	src := rampRaster(t, 10, 10)

	out, err := NewLuminosity().Process(src)
	require.NoError(t, err)
	require.Equal(t, 10, out.Width())
	require.Equal(t, 10, out.Height())

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(x + y)
			p, _ := out.Pixel(x, y)
			assert.Equal(t, raster.Gray(v), p, "pixel (%d,%d)", x, y)
		}
	}
}

func TestLuminosity_BlueOnlyRamp(t *testing.T) {
	// Packed values x+y only set the blue byte, so luma = round(0.07*b),
	// which is 1 once b reaches 8 and 0 below.
	packed := make([]uint32, 100)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			packed[y*10+x] = uint32(x + y)
		}
	}
	src, err := raster.FromPacked(10, 10, packed)
	require.NoError(t, err)

	out, err := NewLuminosity().Process(src)
	require.NoError(t, err)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint32(0xFF000000)
			if x+y >= 8 {
				want = 0xFF010101
			}
			assert.Equal(t, want, out.Packed(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestLuminosity_Weights(t *testing.T) {
	tests := []struct {
		name  string
		pixel raster.Pixel
		want  uint8
	}{
		{"black", raster.Pixel{R: 0, G: 0, B: 0}, 0},
		{"white", raster.Pixel{R: 255, G: 255, B: 255}, 255},
		{"red", raster.Pixel{R: 255}, 54},                    // 53.55
		{"green", raster.Pixel{G: 255}, 184},                 // 183.6
		{"blue", raster.Pixel{B: 255}, 18},                   // 17.85
		{"mixed", raster.Pixel{R: 100, G: 150, B: 200}, 143}, // 21 + 108 + 14
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, luma(tt.pixel))
		})
	}
}

func TestClampChannel(t *testing.T) {
	assert.Equal(t, uint8(255), clampChannel(255))
	assert.Equal(t, uint8(255), clampChannel(256))
	assert.Equal(t, uint8(255), clampChannel(1e6))
	assert.Equal(t, uint8(0), clampChannel(-3))
	assert.Equal(t, uint8(17), clampChannel(17))
}

func TestLuminosity_OutputIsGray(t *testing.T) {
	src := colorRaster(t, 17, 9)

	out, err := NewLuminosity().Process(src)
	require.NoError(t, err)

	assert.Equal(t, src.Width(), out.Width())
	assert.Equal(t, src.Height(), out.Height())
	assert.True(t, IsGrayscale(out))
	assert.False(t, IsGrayscale(src))
}

func TestLuminosity_Idempotent(t *testing.T) {
	src := colorRaster(t, 16, 16)
	g := NewLuminosity()

	once, err := g.Process(src)
	require.NoError(t, err)
	twice, err := g.Process(once)
	require.NoError(t, err)

	assert.True(t, once.Equal(twice))
}

func TestLuminosity_DoesNotMutateSource(t *testing.T) {
	src := colorRaster(t, 8, 8)
	before, err := raster.New(8, 8, func(x, y int) raster.Pixel {
		p, _ := src.Pixel(x, y)
		return p
	})
	require.NoError(t, err)

	out, err := NewLuminosity().Process(src)
	require.NoError(t, err)

	assert.NotSame(t, src, out)
	assert.True(t, src.Equal(before))
}

func TestLuminosity_ZeroArea(t *testing.T) {
	src, err := raster.New(0, 0, nil)
	require.NoError(t, err)

	out, err := NewLuminosity().Process(src)
	require.NoError(t, err)
	assert.True(t, out.Empty())
}

// Helper functions

// rampRaster builds a gray raster where pixel (x,y) has value x+y.
func rampRaster(t *testing.T, width, height int) *raster.Raster {
	t.Helper()
	r, err := raster.New(width, height, func(x, y int) raster.Pixel {
		return raster.Gray(uint8(x + y))
	})
	require.NoError(t, err)
	return r
}

// colorRaster builds a raster with distinct, non-gray colors.
func colorRaster(t *testing.T, width, height int) *raster.Raster {
	t.Helper()
	r, err := raster.New(width, height, func(x, y int) raster.Pixel {
		return raster.Pixel{
			R: uint8(x * 15),
			G: uint8(y * 15),
			B: uint8((x*7 + y*11) % 256),
		}
	})
	require.NoError(t, err)
	return r
}
