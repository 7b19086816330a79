package main

import (
	"os"
	"path/filepath"
	"strings"

	"bloom-viewer/libscn"
)

type bakeResult struct {
	meshes, materials, vertices int
}

// outputPath is the cache file for input. The viewer only finds caches that sit
// next to their source, so a separate out directory is meant for shipping.
func outputPath(input, outDir string, compress bool) string {
	output := libscn.CachePath(input)
	if !compress {
		output = strings.TrimSuffix(output, ".lz4")
	}
	if outDir != "" {
		output = filepath.Join(outDir, filepath.Base(output))
	}
	return output
}

func isUpToDate(input, output string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return false
	}
	return outInfo.ModTime().After(inInfo.ModTime())
}

func bake(input, output string) (bakeResult, error) {
	model, err := libscn.LoadModelSource(input)
	if err != nil {
		return bakeResult{}, err
	}
	if err := libscn.WriteGeoFile(output, model); err != nil {
		return bakeResult{}, err
	}
	return bakeResult{
		meshes:    len(model.Meshes),
		materials: len(model.Materials),
		vertices:  model.VertexCount(),
	}, nil
}
