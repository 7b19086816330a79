package libscn

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"bloom-viewer/libio"

	"github.com/pierrec/lz4/v4"
)

const MagicNumberGEO = 0xc9dae18c
const MagicNumberLZ4 = 0x184d2204

type GeoVersion uint32

const (
	GeoVersion1_000_000 = GeoVersion(1_000_000)
)

type geoHeader struct {
	Check         uint32
	Version       GeoVersion
	MaterialCount uint32
	MeshCount     uint32
}

type geoMeshHeader struct {
	Material    int32
	VertexCount uint32
	IndexCount  uint32
}

// EncodeModel writes the uncompressed mesh cache format.
func EncodeModel(w io.Writer, model *ModelData) error {
	bw := libio.NewWriter(w)
	bw.Value(geoHeader{
		Check:         MagicNumberGEO,
		Version:       GeoVersion1_000_000,
		MaterialCount: uint32(len(model.Materials)),
		MeshCount:     uint32(len(model.Meshes)),
	})
	if !bw.String(model.Name) {
		return fmt.Errorf("could not write geo header: %w", bw.Err)
	}

	for _, mat := range model.Materials {
		bw.String(mat.Name)
		bw.String(mat.Diffuse.Path)
		bw.Blob(mat.Diffuse.Data)
		bw.String(mat.Specular.Path)
		bw.Blob(mat.Specular.Data)
		if !bw.Value(mat.Shininess) {
			return fmt.Errorf("could not write material %q: %w", mat.Name, bw.Err)
		}
	}

	for _, mesh := range model.Meshes {
		bw.Value(geoMeshHeader{
			Material:    int32(mesh.Material),
			VertexCount: uint32(len(mesh.Vertices)),
			IndexCount:  uint32(len(mesh.Indices)),
		})
		bw.String(mesh.Name)
		bw.Value(mesh.Vertices)
		bw.Value(packIndices(mesh.Indices))
		if bw.Err != nil {
			return fmt.Errorf("could not write mesh %q: %w", mesh.Name, bw.Err)
		}
	}
	return nil
}

// packIndices narrows indices to uint16 when they fit, padded to a multiple of 4 bytes.
func packIndices(indices []uint32) any {
	if !shortIndices(len(indices)) {
		return indices
	}
	shorts := make([]uint16, len(indices)+len(indices)%2)
	for i, v := range indices {
		shorts[i] = uint16(v)
	}
	return shorts
}

func shortIndices(count int) bool {
	return count < 0xffff
}

// DecodeModel reads the mesh cache format, lz4 framed or not.
func DecodeModel(r io.Reader) (*ModelData, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("expected geo header: %w", err)
	}

	src := io.MultiReader(bytes.NewReader(magic), r)
	if binary.LittleEndian.Uint32(magic) == MagicNumberLZ4 {
		src = lz4.NewReader(src)
	}
	return decodeModel(libio.NewReader(src))
}

func decodeModel(br *libio.Reader) (*ModelData, error) {
	var header geoHeader
	if !br.Value(&header) {
		return nil, fmt.Errorf("expected geo header; byte 0x%08x: %w", br.Offset(), br.Err)
	}
	switch {
	case header.Check != MagicNumberGEO:
		return nil, fmt.Errorf("geo header is corrupt; byte 0x%08x", br.Offset())
	case header.Version != GeoVersion1_000_000:
		return nil, fmt.Errorf("geo version %d unsupported; byte 0x%08x", header.Version, br.Offset())
	}

	model := &ModelData{
		Name:      br.String(),
		Materials: make([]*MaterialData, header.MaterialCount),
		Meshes:    make([]*Mesh, header.MeshCount),
	}

	for i := range model.Materials {
		mat := &MaterialData{Name: br.String()}
		mat.Diffuse = TextureRef{Path: br.String(), Data: br.Blob()}
		mat.Specular = TextureRef{Path: br.String(), Data: br.Blob()}
		if !br.Value(&mat.Shininess) {
			return nil, fmt.Errorf("expected material %d; byte 0x%08x: %w", i, br.Offset(), br.Err)
		}
		model.Materials[i] = mat
	}

	for i := range model.Meshes {
		mesh, err := decodeMesh(br)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		model.Meshes[i] = mesh
	}
	return model, nil
}

func decodeMesh(br *libio.Reader) (*Mesh, error) {
	var header geoMeshHeader
	if !br.Value(&header) {
		return nil, fmt.Errorf("expected mesh header; byte 0x%08x: %w", br.Offset(), br.Err)
	}
	mesh := &Mesh{
		Name:     br.String(),
		Material: int(header.Material),
		Vertices: make([]Vertex, header.VertexCount),
		Indices:  make([]uint32, header.IndexCount),
	}
	if !br.Value(mesh.Vertices) {
		return nil, fmt.Errorf("expected %d mesh vertices; name %q, byte 0x%08x: %w", header.VertexCount, mesh.Name, br.Offset(), br.Err)
	}

	if shortIndices(len(mesh.Indices)) {
		shorts := make([]uint16, len(mesh.Indices)+len(mesh.Indices)%2)
		br.Value(shorts)
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(shorts[i])
		}
	} else {
		br.Value(mesh.Indices)
	}
	if br.Err != nil {
		return nil, fmt.Errorf("expected %d mesh indices; name %q, byte 0x%08x: %w", header.IndexCount, mesh.Name, br.Offset(), br.Err)
	}

	for _, idx := range mesh.Indices {
		if idx >= header.VertexCount {
			return nil, fmt.Errorf("mesh %q index %d out of range", mesh.Name, idx)
		}
	}
	return mesh, nil
}

func IsGeoFile(filename string) bool {
	return strings.HasSuffix(filename, ".geo") || strings.HasSuffix(filename, ".geo.lz4")
}

// WriteGeoFile writes model to filename, lz4 framed when the name ends in .lz4.
func WriteGeoFile(filename string, model *ModelData) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create geo file %q: %w", filename, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(filename, ".lz4") {
		return EncodeModel(file, model)
	}

	lzw := lz4.NewWriter(file)
	if err = EncodeModel(lzw, model); err != nil {
		return err
	}
	return lzw.Close()
}

func ReadGeoFile(filename string) (*ModelData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open geo file %q: %w", filename, err)
	}
	defer file.Close()

	model, err := DecodeModel(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode geo file %q: %w", filename, err)
	}
	return model, nil
}
