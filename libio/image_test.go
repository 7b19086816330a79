package libio

import (
	"bytes"
	goimg "image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRGBA(t *testing.T) {
	src := goimg.NewNRGBA(goimg.Rect(0, 0, 2, 3))
	src.Set(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, src))

	rgba, format, err := DecodeRGBA(buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, goimg.Rect(0, 0, 2, 3), rgba.Rect)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, rgba.RGBAAt(1, 2))
}

func TestDecodeRGBAInvalid(t *testing.T) {
	_, _, err := DecodeRGBA(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestToRGBAMovesOrigin(t *testing.T) {
	src := goimg.NewGray(goimg.Rect(5, 5, 7, 6))
	src.SetGray(6, 5, color.Gray{Y: 200})

	rgba := ToRGBA(src)
	assert.Equal(t, goimg.Rect(0, 0, 2, 1), rgba.Rect)
	assert.Equal(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, rgba.RGBAAt(1, 0))
}

func TestResize(t *testing.T) {
	src := goimg.NewRGBA(goimg.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	dst := Resize(src, 2, 8)
	assert.Equal(t, goimg.Rect(0, 0, 2, 8), dst.Rect)
	assert.InDelta(t, 0x80, int(dst.RGBAAt(1, 4).R), 1)
}

func TestResizeSameSize(t *testing.T) {
	src := goimg.NewRGBA(goimg.Rect(0, 0, 4, 4))
	assert.Same(t, src, Resize(src, 4, 4))
}
