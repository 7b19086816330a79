package libscn

import (
	"bytes"
	"fmt"
	goimg "image"
	"path/filepath"
	"unsafe"

	"bloom-viewer/libgl"
	"bloom-viewer/libio"
	"bloom-viewer/liblog"
	"bloom-viewer/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// FallbackTextures are bound in place of texture maps a material does not have.
type FallbackTextures struct {
	Diffuse  libgl.UnboundTexture
	Specular libgl.UnboundTexture
}

func NewFallbackTextures() *FallbackTextures {
	return &FallbackTextures{
		Diffuse:  newSolidTexture("Fallback Diffuse", [4]byte{0xff, 0xff, 0xff, 0xff}),
		Specular: newSolidTexture("Fallback Specular", [4]byte{0, 0, 0, 0xff}),
	}
}

func newSolidTexture(label string, rgba [4]byte) libgl.UnboundTexture {
	tex := libgl.NewTexture(gl.TEXTURE_2D)
	tex.SetDebugLabel(label)
	tex.Allocate(1, gl.RGBA8, 1, 1, 0)
	tex.Load(0, 1, 1, 0, gl.RGBA, rgba[:])
	tex.FilterMode(gl.NEAREST, gl.NEAREST)
	return tex
}

func (f *FallbackTextures) Delete() {
	f.Diffuse.Delete()
	f.Specular.Delete()
}

type Material struct {
	Name      string
	Diffuse   libgl.UnboundTexture
	Specular  libgl.UnboundTexture
	Shininess float32
}

type ModelMesh struct {
	Name          string
	VertexArray   libgl.UnboundVertexArray
	VertexBuffer  libgl.UnboundBuffer
	ElementBuffer libgl.UnboundBuffer
	Count         int
	Material      *Material
}

func (mesh *ModelMesh) Delete() {
	libutil.DeleteAll(mesh.VertexBuffer, mesh.ElementBuffer, mesh.VertexArray)
}

// Model is a ModelData uploaded to the GPU.
type Model struct {
	Name     string
	Meshes   []*ModelMesh
	textures []libgl.UnboundTexture
}

// UploadModel creates the GPU resources for data. Relative texture paths are
// resolved against dir. Textures that fail to load fall back to the solid defaults.
func UploadModel(data *ModelData, dir string, fallback *FallbackTextures) *Model {
	model := &Model{Name: data.Name}
	loaded := map[string]libgl.UnboundTexture{}

	loadMap := func(ref TextureRef, fallbackTex libgl.UnboundTexture, kind string) libgl.UnboundTexture {
		if ref.IsEmpty() {
			return fallbackTex
		}
		key := ref.Path
		if len(ref.Data) > 0 {
			key = fmt.Sprintf("embedded:%p", &ref.Data[0])
		}
		if tex, ok := loaded[key]; ok {
			return tex
		}
		img, err := decodeTextureRef(ref, dir)
		if err != nil {
			liblog.Log.Warn("texture failed to load", zap.String("model", data.Name), zap.String("kind", kind), zap.String("path", ref.Path), zap.Error(err))
			loaded[key] = fallbackTex
			return fallbackTex
		}
		tex := newModelTexture(img)
		tex.SetDebugLabel(fmt.Sprintf("%s %s %s", data.Name, kind, filepath.Base(ref.Path)))
		model.textures = append(model.textures, tex)
		loaded[key] = tex
		return tex
	}

	materials := map[*MaterialData]*Material{}
	defaultMaterial := &Material{Name: "default", Diffuse: fallback.Diffuse, Specular: fallback.Specular, Shininess: defaultShininess}

	for _, mesh := range data.Meshes {
		if len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
			continue
		}
		gpuMesh := uploadMesh(data.Name, mesh)
		gpuMesh.Material = defaultMaterial
		if md := data.MaterialOf(mesh); md != nil {
			mat, ok := materials[md]
			if !ok {
				mat = &Material{
					Name:      md.Name,
					Diffuse:   loadMap(md.Diffuse, fallback.Diffuse, "diffuse"),
					Specular:  loadMap(md.Specular, fallback.Specular, "specular"),
					Shininess: md.Shininess,
				}
				materials[md] = mat
			}
			gpuMesh.Material = mat
		}
		model.Meshes = append(model.Meshes, gpuMesh)
	}

	return model
}

func decodeTextureRef(ref TextureRef, dir string) (*goimg.RGBA, error) {
	if len(ref.Data) > 0 {
		img, _, err := libio.DecodeRGBA(bytes.NewReader(ref.Data))
		return img, err
	}
	path := ref.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, filepath.FromSlash(path))
	}
	return libio.LoadRGBA(path)
}

func newModelTexture(img *goimg.RGBA) libgl.UnboundTexture {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	tex := libgl.NewTexture(gl.TEXTURE_2D)
	tex.Allocate(0, gl.RGBA8, w, h, 0)
	tex.Load(0, w, h, 0, gl.RGBA, img.Pix)
	tex.FilterMode(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	tex.WrapMode(gl.REPEAT, gl.REPEAT, 0)
	tex.GenerateMipmap()
	return tex
}

func uploadMesh(modelName string, mesh *Mesh) *ModelMesh {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel(fmt.Sprintf("%s/%s Vertices", modelName, mesh.Name))
	vbo.Allocate(mesh.Vertices, 0)

	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel(fmt.Sprintf("%s/%s Indices", modelName, mesh.Name))
	ebo.Allocate(mesh.Indices, 0)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel(fmt.Sprintf("%s/%s", modelName, mesh.Name))
	vao.Layout(0, 0, 3, gl.FLOAT, false, int(unsafe.Offsetof(Vertex{}.Position)))
	vao.Layout(0, 1, 3, gl.FLOAT, false, int(unsafe.Offsetof(Vertex{}.Normal)))
	vao.Layout(0, 2, 2, gl.FLOAT, false, int(unsafe.Offsetof(Vertex{}.Uv)))
	vao.BindBuffer(0, vbo, 0, VertexSize)
	vao.BindElementBuffer(ebo)

	return &ModelMesh{
		Name:          mesh.Name,
		VertexArray:   vao,
		VertexBuffer:  vbo,
		ElementBuffer: ebo,
		Count:         len(mesh.Indices),
	}
}

// Draw binds each mesh's maps to DiffuseUnit and SpecularUnit and draws it with the bound pipeline.
func (model *Model) Draw() {
	for _, mesh := range model.Meshes {
		mesh.Material.Diffuse.Bind(DiffuseUnit)
		mesh.Material.Specular.Bind(SpecularUnit)
		mesh.VertexArray.Bind()
		gl.DrawElements(gl.TRIANGLES, int32(mesh.Count), gl.UNSIGNED_INT, nil)
	}
}

// BindMaterialUnits points the material samplers of a pipeline at the texture units Draw uses.
func BindMaterialUnits(pipeline libgl.UnboundShaderPipeline) {
	pipeline.SetUniform("material.texture_diffuse1", DiffuseUnit)
	pipeline.SetUniform("material.texture_specular1", SpecularUnit)
}

func (model *Model) Delete() {
	for _, mesh := range model.Meshes {
		mesh.Delete()
	}
	for _, tex := range model.textures {
		tex.Delete()
	}
	model.Meshes = nil
	model.textures = nil
}
