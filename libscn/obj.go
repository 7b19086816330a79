package libscn

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bloom-viewer/liblog"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const defaultShininess = 32

// objCorner identifies a face corner by its position, uv and normal index, -1 if absent.
type objCorner [3]int

func LoadOBJ(filename string) (*ModelData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open obj file %q: %w", filename, err)
	}
	defer file.Close()

	model, err := ParseOBJ(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("could not parse obj file %q: %w", filename, err)
	}
	model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return model, nil
}

// ParseOBJ decodes a Wavefront OBJ stream. Polygons are fan triangulated and the
// texture v coordinate is flipped, since images are uploaded top row first.
// The material library is resolved relative to dir.
func ParseOBJ(r io.Reader, dir string) (*ModelData, error) {
	// faces ahead of the first "o" statement land in the default object
	src := io.MultiReader(strings.NewReader("o default\n"), r)
	dec, err := obj.DecodeReader(src, strings.NewReader(""))
	if err != nil {
		return nil, err
	}
	logDecodeWarnings("obj", dec.Warnings)

	materials := map[string]*MaterialData{}
	if dec.Matlib != "" {
		materials, err = loadMTL(filepath.Join(dir, dec.Matlib))
		if err != nil {
			liblog.Log.Warn("could not load material library", zap.String("file", dec.Matlib), zap.Error(err))
		}
	}

	return buildOBJModel(dec, materials)
}

func loadMTL(filename string) (map[string]*MaterialData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseMTL(bytes.NewReader(data))
}

// ParseMTL reads the diffuse and specular maps and the shininess of each material.
func ParseMTL(r io.Reader) (map[string]*MaterialData, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec, err := obj.DecodeReader(strings.NewReader(""), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	logDecodeWarnings("mtl", dec.Warnings)

	specular := specularMaps(bytes.NewReader(data))
	materials := make(map[string]*MaterialData, len(dec.Materials))
	for name, mat := range dec.Materials {
		if mat == nil {
			continue
		}
		md := &MaterialData{Name: name, Shininess: mat.Shininess}
		if md.Shininess <= 0 {
			md.Shininess = defaultShininess
		}
		if mat.MapKd != "" {
			md.Diffuse.Path = filepath.ToSlash(mat.MapKd)
		}
		md.Specular.Path = specular[name]
		materials[name] = md
	}
	return materials, nil
}

// specularMaps collects the map_Ks statement of each material. Map options such
// as "-bm 1" are dropped and the file name may contain spaces.
func specularMaps(r io.Reader) map[string]string {
	maps := map[string]string{}
	current := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			current = fields[1]
		case "map_Ks":
			args := fields[1:]
			for len(args) > 1 && strings.HasPrefix(args[0], "-") {
				args = args[2:]
			}
			if current != "" && len(args) > 0 {
				maps[current] = filepath.ToSlash(strings.Join(args, " "))
			}
		}
	}
	return maps
}

func logDecodeWarnings(kind string, warnings []string) {
	for _, w := range warnings {
		liblog.Log.Debug("wavefront decoder warning", zap.String("kind", kind), zap.String("warning", w))
	}
}

// buildOBJModel splits every decoded object into one mesh per run of faces sharing a material.
func buildOBJModel(dec *obj.Decoder, materials map[string]*MaterialData) (*ModelData, error) {
	model := &ModelData{}
	materialIndex := map[string]int{}

	resolve := func(name string) int {
		mat, ok := materials[name]
		if !ok {
			return -1
		}
		idx, seen := materialIndex[name]
		if !seen {
			idx = len(model.Materials)
			model.Materials = append(model.Materials, mat)
			materialIndex[name] = idx
		}
		return idx
	}

	for i := range dec.Objects {
		object := &dec.Objects[i]
		start := 0
		for start < len(object.Faces) {
			end := start + 1
			for end < len(object.Faces) && object.Faces[end].Material == object.Faces[start].Material {
				end++
			}
			mesh, err := buildOBJMesh(dec, object.Name, object.Faces[start:end])
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", object.Name, err)
			}
			mesh.Material = resolve(object.Faces[start].Material)
			model.Meshes = append(model.Meshes, mesh)
			start = end
		}
	}

	if len(model.Meshes) == 0 {
		return nil, fmt.Errorf("no faces found")
	}
	return model, nil
}

func buildOBJMesh(dec *obj.Decoder, name string, faces []obj.Face) (*Mesh, error) {
	positions := len(dec.Vertices) / 3
	uvs := len(dec.Uvs) / 2
	normals := len(dec.Normals) / 3

	dedupe := map[objCorner]uint32{}
	mesh := &Mesh{Name: name}
	missingNormals := false

	corner := func(face *obj.Face, i int) (uint32, error) {
		key := objCorner{face.Vertices[i], -1, -1}
		if key[0] < 0 || key[0] >= positions {
			return 0, fmt.Errorf("face vertex %d out of range", face.Vertices[i]+1)
		}
		if i < len(face.Uvs) && face.Uvs[i] >= 0 && face.Uvs[i] < uvs {
			key[1] = face.Uvs[i]
		}
		if i < len(face.Normals) && face.Normals[i] >= 0 && face.Normals[i] < normals {
			key[2] = face.Normals[i]
		}
		if idx, ok := dedupe[key]; ok {
			return idx, nil
		}

		vertex := Vertex{Position: mgl32.Vec3{dec.Vertices[3*key[0]], dec.Vertices[3*key[0]+1], dec.Vertices[3*key[0]+2]}}
		if key[1] >= 0 {
			vertex.Uv = mgl32.Vec2{dec.Uvs[2*key[1]], 1 - dec.Uvs[2*key[1]+1]}
		}
		if key[2] >= 0 {
			vertex.Normal = mgl32.Vec3{dec.Normals[3*key[2]], dec.Normals[3*key[2]+1], dec.Normals[3*key[2]+2]}
		} else {
			missingNormals = true
		}
		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, vertex)
		dedupe[key] = idx
		return idx, nil
	}

	for f := range faces {
		face := &faces[f]
		if len(face.Vertices) < 3 {
			return nil, fmt.Errorf("face needs at least 3 vertices")
		}
		corners := make([]uint32, len(face.Vertices))
		for i := range face.Vertices {
			idx, err := corner(face, i)
			if err != nil {
				return nil, err
			}
			corners[i] = idx
		}
		for i := 1; i+1 < len(corners); i++ {
			mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
		}
	}

	if missingNormals {
		generateNormals(mesh.Vertices, mesh.Indices)
	}
	return mesh, nil
}
