package bmpfile

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 3), uint8(x + y), 0xff})
		}
	}
	return m
}

func TestToImage(t *testing.T) {
	// 2x2 BGR8, bottom-up, one byte of padding
	buf := []byte{
		1, 2, 3, 4, 5, 6, 0,
		7, 8, 9, 10, 11, 12, 0,
	}
	p := ImageProperties{Width: 2, Height: 2, LinePadding: 1, PixelFormat: BGR8}

	m, err := ToImage(buf, p)
	require.NoError(t, err)
	rgba, ok := m.(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{9, 8, 7, 0xff}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{12, 11, 10, 0xff}, rgba.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{3, 2, 1, 0xff}, rgba.RGBAAt(0, 1))

	p.Orientation = TopDown
	m, err = ToImage(buf, p)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{3, 2, 1, 0xff}, m.(*image.RGBA).RGBAAt(0, 0))

	gray, err := ToImage([]byte{1, 2, 3, 4}, ImageProperties{Width: 2, Height: 2, PixelFormat: Mono8, Orientation: TopDown})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, gray.(*image.Gray).Pix)

	nrgba, err := ToImage([]byte{1, 2, 3, 4}, ImageProperties{Width: 1, Height: 1, PixelFormat: BGRA8})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{3, 2, 1, 4}, nrgba.(*image.NRGBA).NRGBAAt(0, 0))

	_, err = ToImage(buf[:5], p)
	assert.Equal(t, BufferTooSmall, ResultOf(err))
	_, err = ToImage(buf, ImageProperties{})
	assert.Equal(t, InvalidArgument, ResultOf(err))
	_, err = ToImage(nil, p)
	assert.Equal(t, NullArgument, ResultOf(err))

	// Dimensions whose buffer size overflows
	_, err = ToImage([]byte{1}, ImageProperties{Width: maxInt, Height: 2, PixelFormat: Mono8})
	assert.Equal(t, InvalidArgument, ResultOf(err))
}

func TestFromImage(t *testing.T) {
	src := testImage(5, 3)

	for _, f := range []PixelFormat{Mono8, BGR8, BGRA8} {
		t.Run(f.String(), func(t *testing.T) {
			buf, p, err := FromImage(src, f)
			require.NoError(t, err)
			assert.Equal(t, ImageProperties{Width: 5, Height: 3, PixelFormat: f, Orientation: TopDown}, p)
			assert.Len(t, buf, ComputeBufferSize(p))

			m, err := ToImage(buf, p)
			require.NoError(t, err)
			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					want := color.NRGBAModel.Convert(src.At(x, y))
					if f == Mono8 {
						want = color.NRGBAModel.Convert(color.GrayModel.Convert(src.At(x, y)))
					}
					assert.Equal(t, want, color.NRGBAModel.Convert(m.At(x, y)), "(%d, %d)", x, y)
				}
			}
		})
	}

	_, _, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 4)), Mono8)
	assert.Equal(t, InvalidArgument, ResultOf(err))
	_, _, err = FromImage(src, PixelFormatInvalid)
	assert.Equal(t, InvalidArgument, ResultOf(err))
	_, _, err = FromImage(nil, Mono8)
	assert.Equal(t, NullArgument, ResultOf(err))
}

func TestFromImageGrayOffset(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	sub := g.SubImage(image.Rect(1, 1, 3, 3))

	buf, p, err := FromImage(sub, Mono8)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Width)
	assert.Equal(t, []byte{5, 6, 9, 10}, buf)
}

func decodeWithXImage(t *testing.T, file string) image.Image {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	m, err := bmp.Decode(f)
	require.NoError(t, err)
	return m
}

func TestSaveReadableByXImage(t *testing.T) {
	dir := t.TempDir()
	src := testImage(90, 100)

	t.Run("BGR8", func(t *testing.T) {
		buf, p, err := FromImage(src, BGR8)
		require.NoError(t, err)
		file := filepath.Join(dir, "bgr8.bmp")
		require.NoError(t, Save(file, buf, p, 0))

		want, err := ToImage(buf, p)
		require.NoError(t, err)
		got := decodeWithXImage(t, file)
		assert.Equal(t, want.Bounds(), got.Bounds())
		assert.Equal(t, want.(*image.RGBA).Pix, got.(*image.RGBA).Pix)
	})

	t.Run("Mono8", func(t *testing.T) {
		buf, p, err := FromImage(src, Mono8)
		require.NoError(t, err)
		p.LinePadding = 0
		file := filepath.Join(dir, "mono8.bmp")
		require.NoError(t, Save(file, buf, p, 0))

		got, ok := decodeWithXImage(t, file).(*image.Paletted)
		require.True(t, ok)
		assert.Len(t, got.Palette, maxColors)
		assert.Equal(t, buf, got.Pix)
	})
}
