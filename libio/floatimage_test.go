package libio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFloatImage() *FloatImage {
	pix := []float32{
		0, 0.5, 1, 1,
		2, 4, 8, 1,
		16, 0.25, -1, 1,
		3, 3, 3, 1,
	}
	return NewFloatImage(pix, 4, 2, 2)
}

func TestFloatImageUncompressed(t *testing.T) {
	img := testFloatImage()
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeFloatImage(buf, img, FloatImageCompressionNone))

	decoded, err := DecodeFloatImage(buf)
	require.NoError(t, err)
	assert.Equal(t, img, decoded)
}

func TestFloatImageFixedPoint(t *testing.T) {
	img := testFloatImage()
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeFloatImage(buf, img, FloatImageCompressionFixedPoint16Lz4))

	decoded, err := DecodeFloatImage(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Width)
	assert.Equal(t, 2, decoded.Height)
	assert.Equal(t, 4, decoded.Channels)
	require.Len(t, decoded.Pix, len(img.Pix))
	for i := range img.Pix {
		assert.InDelta(t, img.Pix[i], decoded.Pix[i], 1e-3, "sample %d", i)
	}
}

func TestFloatImageFixedPointFlatChannel(t *testing.T) {
	img := NewFloatImage([]float32{7, 7, 7}, 1, 3, 1)
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeFloatImage(buf, img, FloatImageCompressionFixedPoint16Lz4))

	decoded, err := DecodeFloatImage(buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 7, 7}, decoded.Pix)
}

func TestDecodeFloatImageRejectsCorruptHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeFloatImage(buf, testFloatImage(), FloatImageCompressionNone))
	data := buf.Bytes()
	data[0] ^= 0xff

	_, err := DecodeFloatImage(bytes.NewReader(data))
	assert.ErrorContains(t, err, "corrupt")
}

func TestDecodeFloatImageTruncated(t *testing.T) {
	_, err := DecodeFloatImage(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorContains(t, err, "expected f32 header")
}

func TestEncodeFloatImageUnknownCompression(t *testing.T) {
	err := EncodeFloatImage(&bytes.Buffer{}, testFloatImage(), 99)
	assert.ErrorContains(t, err, "unknown compression")
}

func TestFloatImageToRGBAFlips(t *testing.T) {
	img := NewFloatImage([]float32{
		0, 0, 0, 1,
		100, 100, 100, 1,
	}, 4, 1, 2)
	rgba := img.ToRGBA(1, 2.2)

	// bottom row in the float image becomes the bottom row of the upright image
	assert.Equal(t, uint8(0), rgba.Pix[4])
	assert.Equal(t, uint8(0xff), rgba.Pix[0])
	assert.Equal(t, uint8(0xff), rgba.Pix[3])
	assert.Equal(t, uint8(0xff), rgba.Pix[7])
}
