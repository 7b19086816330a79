package libscn

import (
	"fmt"
	"path/filepath"
	"strings"

	"bloom-viewer/liblog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// LoadGLTF imports a .gltf or .glb file. Node transforms are baked into the
// vertices so every mesh is in model space.
func LoadGLTF(filename string) (*ModelData, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open gltf file %q: %w", filename, err)
	}

	model := &ModelData{
		Name: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
	}

	textures := make([]TextureRef, len(doc.Textures))
	for i, tex := range doc.Textures {
		if tex.Source == nil || *tex.Source >= len(doc.Images) {
			continue
		}
		ref, err := gltfImageRef(doc, doc.Images[*tex.Source])
		if err != nil {
			liblog.Log.Warn("could not read gltf image", zap.String("file", filename), zap.Int("image", *tex.Source), zap.Error(err))
			continue
		}
		textures[i] = ref
	}

	for i, gm := range doc.Materials {
		mat := &MaterialData{Name: gm.Name, Shininess: 32}
		if mat.Name == "" {
			mat.Name = fmt.Sprintf("material_%d", i)
		}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorTexture != nil && pbr.BaseColorTexture.Index < len(textures) {
				mat.Diffuse = textures[pbr.BaseColorTexture.Index]
			}
			roughness := float32(pbr.RoughnessFactorOrDefault())
			mat.Shininess = (1-roughness)*(1-roughness)*128 + 1
		}
		model.Materials = append(model.Materials, mat)
	}

	var visit func(node int, parent mgl32.Mat4) error
	visit = func(node int, parent mgl32.Mat4) error {
		gn := doc.Nodes[node]
		world := parent.Mul4(gltfNodeMatrix(gn))
		if gn.Mesh != nil && *gn.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*gn.Mesh]
			for pi, prim := range gm.Primitives {
				mesh, err := gltfPrimitive(doc, prim)
				if err != nil {
					return fmt.Errorf("mesh %d primitive %d: %w", *gn.Mesh, pi, err)
				}
				if mesh == nil {
					continue
				}
				mesh.Name = gm.Name
				if mesh.Name == "" {
					mesh.Name = fmt.Sprintf("mesh_%d", *gn.Mesh)
				}
				transformMesh(mesh, world)
				model.Meshes = append(model.Meshes, mesh)
			}
		}
		for _, child := range gn.Children {
			if child < len(doc.Nodes) {
				if err := visit(child, world); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, root := range gltfRoots(doc) {
		if err := visit(root, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("could not load gltf file %q: %w", filename, err)
		}
	}

	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("gltf file %q contains no triangle meshes", filename)
	}
	return model, nil
}

func gltfImageRef(doc *gltf.Document, img *gltf.Image) (TextureRef, error) {
	if img.BufferView != nil {
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return TextureRef{}, err
		}
		return TextureRef{Data: data}, nil
	}
	if img.IsEmbeddedResource() {
		data, err := img.MarshalData()
		if err != nil {
			return TextureRef{}, err
		}
		return TextureRef{Data: data}, nil
	}
	return TextureRef{Path: img.URI}, nil
}

// gltfRoots returns the nodes of the default scene, or every parentless node if there is none.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func gltfNodeMatrix(gn *gltf.Node) mgl32.Mat4 {
	if m := gn.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var result mgl32.Mat4
		for i := range m {
			result[i] = float32(m[i])
		}
		return result
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	rotation := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		liblog.Log.Debug("skipping non triangle gltf primitive", zap.Int("mode", int(prim.Mode)))
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Material: -1,
	}
	if prim.Material != nil {
		mesh.Material = *prim.Material
	}
	for i, p := range positions {
		mesh.Vertices[i].Position = p
		if i < len(uvs) {
			mesh.Vertices[i].Uv = uvs[i]
		}
		if i < len(normals) {
			mesh.Vertices[i].Normal = normals[i]
		}
	}

	if prim.Indices != nil {
		if mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	if len(normals) < len(positions) {
		generateNormals(mesh.Vertices, mesh.Indices)
	}
	return mesh, nil
}

// transformMesh applies m to positions and its normal matrix to normals.
func transformMesh(mesh *Mesh, m mgl32.Mat4) {
	if m == mgl32.Ident4() {
		return
	}
	normalMatrix := m.Mat3().Inv().Transpose()
	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		v.Position = m.Mul4x1(v.Position.Vec4(1)).Vec3()
		v.Normal = normalMatrix.Mul3x1(v.Normal).Normalize()
	}
	// mirroring transforms flip the winding
	if m.Mat3().Det() < 0 {
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			mesh.Indices[i+1], mesh.Indices[i+2] = mesh.Indices[i+2], mesh.Indices[i+1]
		}
	}
}
