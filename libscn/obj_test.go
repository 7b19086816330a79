package libscn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# quad
mtllib quad.mtl
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl stone
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl stone
Ns 64
Kd 1 1 1
map_Kd textures/stone_diffuse.png
map_Ks -bm 1 textures/stone specular.png
`

func TestParseOBJFanTriangulates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(quadMTL), 0o644))

	model, err := ParseOBJ(strings.NewReader(quadOBJ), dir)
	require.NoError(t, err)
	require.Len(t, model.Meshes, 1)

	mesh := model.Meshes[0]
	assert.Equal(t, "quad", mesh.Name)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.Vertices[2].Normal)
	// v is flipped
	assert.Equal(t, mgl32.Vec2{1, 0}, mesh.Vertices[2].Uv)

	mat := model.MaterialOf(mesh)
	require.NotNil(t, mat)
	assert.Equal(t, "stone", mat.Name)
	assert.Equal(t, "textures/stone_diffuse.png", mat.Diffuse.Path)
	assert.Equal(t, "textures/stone specular.png", mat.Specular.Path)
	assert.Equal(t, float32(64), mat.Shininess)
}

func TestParseOBJMissingMaterialLibrary(t *testing.T) {
	model, err := ParseOBJ(strings.NewReader(quadOBJ), t.TempDir())
	require.NoError(t, err)
	require.Len(t, model.Meshes, 1)
	assert.Nil(t, model.MaterialOf(model.Meshes[0]))
	assert.Empty(t, model.Materials)
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 0 -1
f 1 2 3
`
	model, err := ParseOBJ(strings.NewReader(src), "")
	require.NoError(t, err)
	for _, v := range model.Meshes[0].Vertices {
		assert.InDeltaSlice(t, []float32{0, 1, 0}, v.Normal[:], 1e-6)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
f -3 -2 -1
`
	model, err := ParseOBJ(strings.NewReader(src), "")
	require.NoError(t, err)
	mesh := model.Meshes[0]
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, mesh.Vertices[2].Position)
}

func TestParseOBJSplitsObjectsAndMaterials(t *testing.T) {
	dir := t.TempDir()
	mtl := "newmtl a\nmap_Kd a.png\nnewmtl b\nmap_Kd b.png\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.mtl"), []byte(mtl), 0o644))
	src := `mtllib m.mtl
v 0 0 0
v 1 0 0
v 1 1 0
o first
usemtl a
f 1 2 3
usemtl b
f 1 2 3
o second
usemtl b
f 3 2 1
usemtl missing
f 1 3 2
`
	model, err := ParseOBJ(strings.NewReader(src), dir)
	require.NoError(t, err)
	require.Len(t, model.Meshes, 4)
	assert.Equal(t, "first", model.Meshes[0].Name)
	assert.Equal(t, "first", model.Meshes[1].Name)
	assert.Equal(t, "second", model.Meshes[2].Name)
	assert.Equal(t, "a", model.MaterialOf(model.Meshes[0]).Name)
	assert.Equal(t, "b", model.MaterialOf(model.Meshes[1]).Name)
	assert.Equal(t, "b", model.MaterialOf(model.Meshes[2]).Name)
	assert.Nil(t, model.MaterialOf(model.Meshes[3]))
	assert.Len(t, model.Materials, 2)
	assert.Equal(t, "a.png", model.Materials[0].Diffuse.Path)
}

func TestParseOBJFacesBeforeObject(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`
	model, err := ParseOBJ(strings.NewReader(src), "")
	require.NoError(t, err)
	require.Len(t, model.Meshes, 1)
	assert.Equal(t, "default", model.Meshes[0].Name)
	assert.Equal(t, []uint32{0, 1, 2}, model.Meshes[0].Indices)
}

func TestParseOBJErrors(t *testing.T) {
	tests := map[string]string{
		"no faces":     "v 0 0 0\n",
		"bad vertex":   "v 0 x 0\n",
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"short face":   "v 0 0 0\nv 0 0 0\nf 1 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(src), "")
			assert.Error(t, err)
		})
	}
}

func TestParseMTLDefaults(t *testing.T) {
	materials, err := ParseMTL(strings.NewReader("newmtl plain\nKd 0.5 0.5 0.5\n"))
	require.NoError(t, err)
	require.Contains(t, materials, "plain")
	assert.True(t, materials["plain"].Diffuse.IsEmpty())
	assert.True(t, materials["plain"].Specular.IsEmpty())
	assert.Equal(t, float32(32), materials["plain"].Shininess)
}

func TestSpecularMaps(t *testing.T) {
	src := `newmtl a
map_Ks a_spec.png
newmtl b
Ns 10
newmtl c
map_Ks -bm 1 -s 1 textures/c spec.png
`
	maps := specularMaps(strings.NewReader(src))
	assert.Equal(t, map[string]string{"a": "a_spec.png", "c": "textures/c spec.png"}, maps)
}

func TestMaterialOf(t *testing.T) {
	stone := &MaterialData{Name: "stone"}
	model := &ModelData{Materials: []*MaterialData{stone}}
	assert.Same(t, stone, model.MaterialOf(&Mesh{Material: 0}))
	assert.Nil(t, model.MaterialOf(&Mesh{Material: -1}))
	assert.Nil(t, model.MaterialOf(&Mesh{Material: 1}))
}
