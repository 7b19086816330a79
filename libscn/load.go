package libscn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bloom-viewer/liblog"

	"go.uber.org/zap"
)

// CachePath is where the mesh cache of a model source file lives.
func CachePath(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".geo.lz4"
}

// LoadModelFile loads .obj, .gltf, .glb, .geo and .geo.lz4 files. For obj and gltf
// sources a mesh cache next to the file is used instead when it is newer.
func LoadModelFile(filename string) (*ModelData, error) {
	if IsGeoFile(filename) {
		return ReadGeoFile(filename)
	}

	if cache := CachePath(filename); cacheIsFresh(filename, cache) {
		model, err := ReadGeoFile(cache)
		if err == nil {
			liblog.Log.Debug("using mesh cache", zap.String("file", cache))
			return model, nil
		}
		liblog.Log.Warn("ignoring unreadable mesh cache", zap.String("file", cache), zap.Error(err))
	}

	return LoadModelSource(filename)
}

// LoadModelSource parses an obj or gltf file without consulting the mesh cache.
func LoadModelSource(filename string) (*ModelData, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename)
	case ".gltf", ".glb":
		return LoadGLTF(filename)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filename)
	}
}

func cacheIsFresh(source, cache string) bool {
	cacheInfo, err := os.Stat(cache)
	if err != nil {
		return false
	}
	sourceInfo, err := os.Stat(source)
	if err != nil {
		// the cache alone is enough to load the model
		return true
	}
	return cacheInfo.ModTime().After(sourceInfo.ModTime())
}
