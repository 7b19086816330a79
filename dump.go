package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"bloom-viewer/libgl"
	"bloom-viewer/libio"
	"bloom-viewer/liblog"

	"go.uber.org/zap"
)

const DumpDir = "dump"

type dumpTarget struct {
	Name    string
	Texture libgl.UnboundTexture
}

// DumpTargets reads the given textures back and writes each as a float image
// with a tone mapped PNG preview next to it.
func DumpTargets(dir string, exposure float32, targets []dumpTarget) {
	defer libgl.PushDebugGroup("Dump Targets")()

	stamp := time.Now().Format("20060102-150405")
	for _, target := range targets {
		tex := target.Texture
		img := libio.NewFloatImage(libgl.ReadPixels(tex, 4), 4, tex.Width(), tex.Height())
		base := filepath.Join(dir, fmt.Sprintf("%s_%s", stamp, target.Name))
		if err := writeDump(base, img, exposure); err != nil {
			liblog.Log.Error("could not dump target", zap.String("target", target.Name), zap.Error(err))
			continue
		}
		liblog.Log.Info("dumped target", zap.String("target", target.Name), zap.String("file", base+".f32"))
	}
}

func writeDump(base string, img *libio.FloatImage, exposure float32) error {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return err
	}

	if err := writeFile(base+".f32", func(f *os.File) error {
		return libio.EncodeFloatImage(f, img, libio.FloatImageCompressionFixedPoint16Lz4)
	}); err != nil {
		return err
	}
	return writeFile(base+".png", func(f *os.File) error {
		return png.Encode(f, img.ToRGBA(exposure, 2.2))
	})
}

func writeFile(name string, write func(f *os.File) error) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err = write(file); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return nil
}
