package libgl

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

// The cache should expire after some time, since the driver might have
// had an update and produce different code now.
const shaderCacheMaxAge = 30 * 24 * time.Hour

type shaderCacheManager struct {
	Dir      string
	Disabled bool
}

// ShaderCache stores linked program binaries keyed by source and driver.
var ShaderCache = &shaderCacheManager{
	Dir: ".shadercache",
}

func (cache *shaderCacheManager) path(source string) string {
	return filepath.Join(cache.Dir, cache.key(source)+".bin")
}

func (cache *shaderCacheManager) key(source string) string {
	hasher := md5.New()
	hasher.Write([]byte(source))
	if GlEnv != nil {
		hasher.Write([]byte(GlEnv.Vendor))
		hasher.Write([]byte(GlEnv.Renderer))
		hasher.Write([]byte(GlEnv.Version))
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (cache *shaderCacheManager) Put(source string, program ShaderProgram) {
	if cache.Disabled {
		return
	}
	err := os.MkdirAll(cache.Dir, 0755)
	if err != nil {
		liblog.Log.Warn("could not create shader cache directory", zap.Error(err))
		return
	}

	var length int32
	gl.GetProgramiv(program.Id(), gl.PROGRAM_BINARY_LENGTH, &length)
	if length == 0 {
		return
	}
	buf := make([]byte, length)
	var format uint32
	gl.GetProgramBinary(program.Id(), length, &length, &format, Pointer(buf))
	buf = buf[:length]

	file, err := os.OpenFile(cache.path(source), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		liblog.Log.Warn("could not write shader cache", zap.Error(err))
		return
	}
	defer file.Close()
	if err = writeProgramBinary(file, format, buf); err != nil {
		liblog.Log.Warn("could not write shader cache", zap.Error(err))
	}
}

func (cache *shaderCacheManager) Get(source string) (ok bool, buf []byte, format uint32) {
	var err error
	if cache.Disabled {
		return
	}
	defer func() {
		if err != nil {
			liblog.Log.Warn("could not read shader cache", zap.Error(err))
		}
	}()

	shaderPath := cache.path(source)
	info, err := os.Stat(shaderPath)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	if time.Since(info.ModTime()) > shaderCacheMaxAge {
		os.Remove(shaderPath)
		return
	}

	file, err := os.Open(shaderPath)
	if err != nil {
		return
	}
	defer file.Close()
	format, buf, err = readProgramBinary(file)
	if err != nil {
		return
	}
	return true, buf, format
}

func (cache *shaderCacheManager) Evict(source string) {
	err := os.Remove(cache.path(source))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		liblog.Log.Warn("could not evict shader cache entry", zap.Error(err))
	}
}

func writeProgramBinary(w io.Writer, format uint32, buf []byte) error {
	if err := binary.Write(w, binary.LittleEndian, format); err != nil {
		return err
	}
	_, err := w.Write(buf)
	return err
}

func readProgramBinary(r io.Reader) (format uint32, buf []byte, err error) {
	if err = binary.Read(r, binary.LittleEndian, &format); err != nil {
		return 0, nil, fmt.Errorf("expected binary format: %w", err)
	}
	buf, err = io.ReadAll(r)
	if err == nil && len(buf) == 0 {
		err = fmt.Errorf("empty program binary")
	}
	return format, buf, err
}
