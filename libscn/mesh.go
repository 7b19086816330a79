package libscn

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Uv       mgl32.Vec2
}

const VertexSize = int(unsafe.Sizeof(Vertex{}))
const ElementIndexSize = int(unsafe.Sizeof(uint32(0)))

// TextureRef points at a texture image. Data holds encoded image bytes for textures
// embedded in the model file, otherwise Path is relative to the model's directory.
type TextureRef struct {
	Path string
	Data []byte
}

func (ref TextureRef) IsEmpty() bool {
	return ref.Path == "" && len(ref.Data) == 0
}

type MaterialData struct {
	Name      string
	Diffuse   TextureRef
	Specular  TextureRef
	Shininess float32
}

type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	// Material indexes into ModelData.Materials, -1 for none.
	Material int
}

// ModelData is a CPU side model as produced by the loaders and the mesh cache.
type ModelData struct {
	Name      string
	Meshes    []*Mesh
	Materials []*MaterialData
}

func (m *ModelData) VertexCount() (count int) {
	for _, mesh := range m.Meshes {
		count += len(mesh.Vertices)
	}
	return
}

func (m *ModelData) MaterialOf(mesh *Mesh) *MaterialData {
	if mesh.Material < 0 || mesh.Material >= len(m.Materials) {
		return nil
	}
	return m.Materials[mesh.Material]
}

// generateNormals writes area weighted vertex normals for an indexed triangle list.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vertices[i0].Position, vertices[i1].Position, vertices[i2].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		} else {
			vertices[i].Normal = mgl32.Vec3{0, 1, 0}
		}
	}
}
