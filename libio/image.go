package libio

import (
	"fmt"
	goimg "image"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DecodeRGBA decodes any registered image format into tightly packed 8 bit RGBA with a zero origin.
func DecodeRGBA(r io.Reader) (*goimg.RGBA, string, error) {
	img, format, err := goimg.Decode(r)
	if err != nil {
		return nil, format, err
	}
	return ToRGBA(img), format, nil
}

func LoadRGBA(filename string) (*goimg.RGBA, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", filename, err)
	}
	defer file.Close()

	img, _, err := DecodeRGBA(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", filename, err)
	}
	return img, nil
}

func ToRGBA(img goimg.Image) *goimg.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*goimg.RGBA); ok && bounds.Min == (goimg.Point{}) && rgba.Stride == 4*bounds.Dx() {
		return rgba
	}
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// Resize scales with a Catmull-Rom kernel. The source is returned unchanged if it already has the size.
func Resize(img *goimg.RGBA, width, height int) *goimg.RGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	dst := goimg.NewRGBA(goimg.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
