package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	goimg "image"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

const MagicNumberF32 = 0x6d16837d

type FloatImageVersion uint32

const (
	F32Version1_001_000 = FloatImageVersion(1_001_000)
)

type FloatImageCompression uint32

const (
	FloatImageCompressionNone = FloatImageCompression(iota)
	FloatImageCompressionFixedPoint16Lz4
)

type FloatImageHeader struct {
	Check         uint32
	Version       FloatImageVersion
	Width, Height uint32
	Channels      uint8
	Compression   FloatImageCompression
	Unused        [14]uint8
}

// FloatImage holds interleaved float samples as read back from the GPU.
// Row 0 is the bottom row, as opposed to Go's top left origin.
type FloatImage struct {
	Channels      int
	Width, Height int
	Pix           []float32
}

func NewFloatImage(pix []float32, channels int, width, height int) *FloatImage {
	return &FloatImage{
		Pix:      pix,
		Channels: channels,
		Width:    width,
		Height:   height,
	}
}

func (img *FloatImage) Count() int {
	return img.Width * img.Height
}

// ToRGBA tonemaps with the given exposure and gamma and flips the image upright.
func (img *FloatImage) ToRGBA(exposure, gamma float32) *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, img.Width, img.Height))
	invGamma := 1 / gamma

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := (x + y*img.Width) * img.Channels
			j := (x + (img.Height-y-1)*img.Width) * 4
			for c := 0; c < img.Channels && c < 3; c++ {
				rgba.Pix[j+c] = uint8(tonemap(img.Pix[i+c], exposure, invGamma) * 0xff)
			}
			rgba.Pix[j+3] = 0xff
		}
	}
	return rgba
}

func tonemap(value, exposure, invGamma float32) float32 {
	value = 1 - math32.Exp(-value*exposure)
	value = math32.Pow(value, invGamma)
	return math32.Min(math32.Max(0.0, value), 1.0)
}

func EncodeFloatImage(w io.Writer, img *FloatImage, compression FloatImageCompression) error {
	var payload []byte
	var err error
	switch compression {
	case FloatImageCompressionNone:
		buf := &bytes.Buffer{}
		err = binary.Write(buf, binary.LittleEndian, img.Pix)
		payload = buf.Bytes()
	case FloatImageCompressionFixedPoint16Lz4:
		payload, err = lz4Compress(quantize16(img))
	default:
		err = fmt.Errorf("unknown compression %d", compression)
	}
	if err != nil {
		return fmt.Errorf("could not compress f32 pixels: %w", err)
	}

	bw := NewWriter(w)
	bw.Value(FloatImageHeader{
		Check:       MagicNumberF32,
		Version:     F32Version1_001_000,
		Width:       uint32(img.Width),
		Height:      uint32(img.Height),
		Channels:    uint8(img.Channels),
		Compression: compression,
	})
	if bw.Err != nil {
		return fmt.Errorf("could not write f32 header: %w", bw.Err)
	}
	if !bw.Bytes(payload) {
		return fmt.Errorf("could not write f32 encoded pixels: %w", bw.Err)
	}
	return nil
}

func lz4Compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	lzw := lz4.NewWriter(buf)
	if err := lzw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, err
	}
	if _, err := lzw.Write(data); err != nil {
		return nil, err
	}
	if err := lzw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeFloatImage(r io.Reader) (*FloatImage, error) {
	br := NewReader(r)
	var header FloatImageHeader
	if !br.Value(&header) {
		return nil, fmt.Errorf("expected f32 header; byte 0x%08x: %w", br.Offset(), br.Err)
	}
	switch {
	case header.Check != MagicNumberF32:
		return nil, fmt.Errorf("f32 header is corrupt; byte 0x%08x", br.Offset())
	case header.Version != F32Version1_001_000:
		return nil, fmt.Errorf("f32 version %d unsupported; byte 0x%08x", header.Version, br.Offset())
	}

	img := NewFloatImage(nil, int(header.Channels), int(header.Width), int(header.Height))
	samples := img.Count() * img.Channels
	var err error
	switch header.Compression {
	case FloatImageCompressionNone:
		img.Pix = make([]float32, samples)
		br.Value(img.Pix)
		err = br.Err
	case FloatImageCompressionFixedPoint16Lz4:
		packed := make([]byte, 8*img.Channels+2*samples)
		if _, err = io.ReadFull(lz4.NewReader(br.Source()), packed); err == nil {
			err = dequantize16(img, packed)
		}
	default:
		err = fmt.Errorf("unknown compression %d", header.Compression)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decompress f32 pixels: %w", err)
	}
	return img, nil
}

// quantize16 stores each channel as its float range followed by its samples
// mapped linearly onto 0..0xffff.
func quantize16(img *FloatImage) []byte {
	count := img.Count()
	buf := bytes.NewBuffer(make([]byte, 0, 8*img.Channels+2*count*img.Channels))
	bw := NewWriter(buf)
	for ch := 0; ch < img.Channels; ch++ {
		lo, hi := channelRange(img, ch)
		bw.Uint32(math32.Float32bits(lo))
		bw.Uint32(math32.Float32bits(hi))
		span := hi - lo
		for i := 0; i < count; i++ {
			var q uint16
			if span > 0 {
				q = uint16(math32.Round((img.Pix[i*img.Channels+ch] - lo) / span * 0xffff))
			}
			bw.Uint16(q)
		}
	}
	return buf.Bytes()
}

func channelRange(img *FloatImage, ch int) (lo, hi float32) {
	count := img.Count()
	if count == 0 {
		return 0, 0
	}
	lo, hi = math32.Inf(1), math32.Inf(-1)
	for i := 0; i < count; i++ {
		v := img.Pix[i*img.Channels+ch]
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	return lo, hi
}

func dequantize16(img *FloatImage, packed []byte) error {
	count := img.Count()
	img.Pix = make([]float32, count*img.Channels)
	br := NewReader(bytes.NewReader(packed))
	q := make([]uint16, count)
	for ch := 0; ch < img.Channels; ch++ {
		lo := math32.Float32frombits(br.Uint32())
		hi := math32.Float32frombits(br.Uint32())
		if !br.Value(q) {
			return br.Err
		}
		for i, v := range q {
			img.Pix[i*img.Channels+ch] = float32(v)/0xffff*(hi-lo) + lo
		}
	}
	return nil
}
