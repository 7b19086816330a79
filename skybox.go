package main

import (
	goimg "image"

	"bloom-viewer/libgl"
	"bloom-viewer/libio"
	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

// loadCubemapFaces decodes the six faces. Faces that fail to load are nil and
// the rest are scaled to the size of the first face that loaded.
func loadCubemapFaces(paths []string) (faces []*goimg.RGBA, width, height int) {
	faces = make([]*goimg.RGBA, len(paths))
	for i, path := range paths {
		img, err := libio.LoadRGBA(path)
		if err != nil {
			liblog.Log.Warn("cubemap texture failed to load", zap.String("path", path), zap.Error(err))
			continue
		}
		if width == 0 {
			width, height = img.Bounds().Dx(), img.Bounds().Dy()
		} else if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
			liblog.Log.Debug("resizing cubemap face", zap.String("path", path), zap.Int("width", width), zap.Int("height", height))
			img = libio.Resize(img, width, height)
		}
		faces[i] = img
	}
	return
}

// NewCubemap uploads the faces in +X, -X, +Y, -Y, +Z, -Z order. Missing faces keep undefined contents.
func NewCubemap(paths []string) libgl.UnboundTexture {
	faces, width, height := loadCubemapFaces(paths)
	if width == 0 {
		width, height = 1, 1
	}

	cubemap := libgl.NewTexture(gl.TEXTURE_CUBE_MAP)
	cubemap.SetDebugLabel("Skybox Cubemap")
	cubemap.Allocate(1, gl.RGBA8, width, height, 0)
	for layer, face := range faces {
		if face == nil {
			continue
		}
		cubemap.LoadLayer(0, layer, width, height, gl.RGBA, face.Pix)
	}
	cubemap.FilterMode(gl.LINEAR, gl.LINEAR)
	cubemap.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	return cubemap
}
