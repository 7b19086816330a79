package main

import (
	goimg "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int, c color.RGBA) {
	img := goimg.NewRGBA(goimg.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestLoadCubemapFaces(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 0xff, A: 0xff}
	writePNG(t, filepath.Join(dir, "right.png"), 4, 4, red)
	writePNG(t, filepath.Join(dir, "top.png"), 8, 2, red)

	paths := []string{
		filepath.Join(dir, "right.png"),
		filepath.Join(dir, "left.png"),
		filepath.Join(dir, "top.png"),
	}
	faces, width, height := loadCubemapFaces(paths)
	require.Len(t, faces, 3)
	assert.Equal(t, 4, width)
	assert.Equal(t, 4, height)

	require.NotNil(t, faces[0])
	assert.Nil(t, faces[1])
	require.NotNil(t, faces[2])
	assert.Equal(t, goimg.Rect(0, 0, 4, 4), faces[2].Bounds())
	assert.Equal(t, red, faces[0].RGBAAt(1, 1))
}

func TestLoadCubemapFacesNoneLoaded(t *testing.T) {
	faces, width, height := loadCubemapFaces([]string{"missing_a.png", "missing_b.png"})
	assert.Equal(t, []*goimg.RGBA{nil, nil}, faces)
	assert.Zero(t, width)
	assert.Zero(t, height)
}
