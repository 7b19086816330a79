package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bloom-viewer/libscn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("models", "quad.geo.lz4"), outputPath(filepath.Join("models", "quad.obj"), "", true))
	assert.Equal(t, filepath.Join("models", "quad.geo"), outputPath(filepath.Join("models", "quad.obj"), "", false))
	assert.Equal(t, filepath.Join("out", "scene.geo.lz4"), outputPath(filepath.Join("models", "scene.glb"), "out", true))
}

func TestBake(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(input, []byte(quadOBJ), 0644))
	output := outputPath(input, "", true)

	assert.False(t, isUpToDate(input, output))
	result, err := bake(input, output)
	require.NoError(t, err)
	assert.Equal(t, bakeResult{meshes: 1, materials: 0, vertices: 4}, result)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(output, future, future))
	assert.True(t, isUpToDate(input, output))

	model, err := libscn.LoadModelFile(input)
	require.NoError(t, err)
	require.Len(t, model.Meshes, 1)
	assert.Len(t, model.Meshes[0].Indices, 6)
}

func TestBakeUnsupported(t *testing.T) {
	dir := t.TempDir()
	_, err := bake(filepath.Join(dir, "model.fbx"), filepath.Join(dir, "model.geo"))
	assert.Error(t, err)
}
