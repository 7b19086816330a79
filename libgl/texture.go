package libgl

import (
	"fmt"
	"math/bits"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Width() int
	Height() int
	Bind(unit int) BoundTexture
	// Allocate creates immutable storage, levels == 0 meaning a full mip chain.
	Allocate(levels int, internalFormat uint32, width, height, depth int)
	// Load uploads a whole 2d level.
	Load(level int, width, height, depth int, format uint32, data any)
	// LoadLayer uploads one layer of an array texture or one face of a cubemap.
	LoadLayer(level int, layer int, width, height int, format uint32, data any)
	FilterMode(min, mag int32)
	WrapMode(s, t, r int32)
	GenerateMipmap()
	Delete()
}

type BoundTexture interface {
	UnboundTexture
}

type texture struct {
	glId                 uint32
	target               uint32
	width, height, depth int
}

func NewTexture(target uint32) UnboundTexture {
	tex := &texture{target: target}
	gl.CreateTextures(target, 1, &tex.glId)
	if GlEnv != nil {
		GlEnv.TextureTargets[tex.glId] = target
	}
	return tex
}

// textureDimensions is the number of size arguments the storage call for target takes.
// Cubemaps are allocated like 2d textures and their faces addressed as layers.
func textureDimensions(target uint32) int {
	switch target {
	case gl.TEXTURE_1D, gl.TEXTURE_BUFFER:
		return 1
	case gl.TEXTURE_2D, gl.TEXTURE_2D_MULTISAMPLE, gl.TEXTURE_1D_ARRAY, gl.TEXTURE_CUBE_MAP:
		return 2
	case gl.TEXTURE_3D, gl.TEXTURE_2D_ARRAY, gl.TEXTURE_2D_MULTISAMPLE_ARRAY:
		return 3
	}
	return 0
}

// MipLevels returns the length of a full mip chain for the given size.
func MipLevels(width, height, depth int) int {
	largest := max(width, height, depth, 1)
	return bits.Len(uint(largest))
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) Width() int {
	return tex.width
}

func (tex *texture) Height() int {
	return tex.height
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

func (tex *texture) Bind(unit int) BoundTexture {
	State.BindTextureUnit(unit, tex.glId)
	return tex
}

func (tex *texture) Allocate(levels int, internalFormat uint32, width, height, depth int) {
	if levels == 0 {
		levels = MipLevels(width, height, depth)
	}
	tex.width, tex.height, tex.depth = width, height, depth
	n := int32(levels)
	switch textureDimensions(tex.target) {
	case 1:
		gl.TextureStorage1D(tex.glId, n, internalFormat, int32(width))
	case 2:
		gl.TextureStorage2D(tex.glId, n, internalFormat, int32(width), int32(height))
	case 3:
		gl.TextureStorage3D(tex.glId, n, internalFormat, int32(width), int32(height), int32(depth))
	default:
		liblog.Log.Error("cannot allocate texture storage", zap.Uint32("texture", tex.glId), zap.String("target", fmt.Sprintf("%04x", tex.target)))
	}
}

func (tex *texture) Load(level int, width, height, depth int, format uint32, data any) {
	if textureDimensions(tex.target) != 2 || depth > 1 {
		liblog.Log.Panic("Load only uploads 2d images, use LoadLayer", zap.Uint32("texture", tex.glId))
	}
	gl.TextureSubImage2D(tex.glId, int32(level), 0, 0, int32(width), int32(height), format, pixelType(data), Pointer(data))
}

func (tex *texture) LoadLayer(level int, layer int, width, height int, format uint32, data any) {
	gl.TextureSubImage3D(tex.glId, int32(level), 0, 0, int32(layer), int32(width), int32(height), 1, format, pixelType(data), Pointer(data))
}

func (tex *texture) FilterMode(min, mag int32) {
	setFilter(tex.parameter, min, mag)
}

func (tex *texture) WrapMode(s, t, r int32) {
	setWrap(tex.parameter, s, t, r)
}

func (tex *texture) parameter(name uint32, value int32) {
	gl.TextureParameteri(tex.glId, name, value)
}

func (tex *texture) GenerateMipmap() {
	gl.GenerateTextureMipmap(tex.glId)
}

func (tex *texture) Delete() {
	if GlEnv != nil {
		delete(GlEnv.TextureTargets, tex.glId)
	}
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

// ReadPixels copies mip level 0 into a new float slice. Channel counts other
// than 1, 2 and 3 read RGBA.
func ReadPixels(tex UnboundTexture, channels int) []float32 {
	formats := map[int]uint32{1: gl.RED, 2: gl.RG, 3: gl.RGB}
	format, ok := formats[channels]
	if !ok {
		format, channels = gl.RGBA, 4
	}
	data := make([]float32, tex.Width()*tex.Height()*channels)
	gl.GetTextureImage(tex.Id(), 0, format, gl.FLOAT, int32(len(data)*4), Pointer(data))
	return data
}

func pixelType(data any) uint32 {
	switch data.(type) {
	case []byte, *byte:
		return gl.UNSIGNED_BYTE
	case []uint16, *uint16:
		return gl.UNSIGNED_SHORT
	case []float32, *float32:
		return gl.FLOAT
	}
	liblog.Log.Panic(fmt.Sprintf("unsupported pixel data type %T", data))
	return 0
}

// Zero leaves a parameter unchanged.
func setFilter(set func(uint32, int32), min, mag int32) {
	for name, value := range map[uint32]int32{gl.TEXTURE_MIN_FILTER: min, gl.TEXTURE_MAG_FILTER: mag} {
		if value != 0 {
			set(name, value)
		}
	}
}

func setWrap(set func(uint32, int32), s, t, r int32) {
	for name, value := range map[uint32]int32{gl.TEXTURE_WRAP_S: s, gl.TEXTURE_WRAP_T: t, gl.TEXTURE_WRAP_R: r} {
		if value != 0 {
			set(name, value)
		}
	}
}

type UnboundSampler interface {
	LabeledGlObject
	Bind(unit int) BoundSampler
	FilterMode(min, mag int32)
	WrapMode(s, t, r int32)
	Delete()
}

type BoundSampler interface {
	UnboundSampler
}

type sampler struct {
	glId uint32
}

func NewSampler() UnboundSampler {
	smp := &sampler{}
	gl.CreateSamplers(1, &smp.glId)
	return smp
}

func (smp *sampler) SetDebugLabel(label string) {
	setObjectLabel(gl.SAMPLER, smp.glId, label)
}

func (smp *sampler) Bind(unit int) BoundSampler {
	State.BindSampler(unit, smp.glId)
	return smp
}

func (smp *sampler) FilterMode(min, mag int32) {
	setFilter(smp.parameter, min, mag)
}

func (smp *sampler) WrapMode(s, t, r int32) {
	setWrap(smp.parameter, s, t, r)
}

func (smp *sampler) parameter(name uint32, value int32) {
	gl.SamplerParameteri(smp.glId, name, value)
}

func (smp *sampler) Delete() {
	gl.DeleteSamplers(1, &smp.glId)
	smp.glId = 0
}
