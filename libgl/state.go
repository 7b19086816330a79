package libgl

import (
	"github.com/go-gl/gl/v4.5-core/gl"
)

type GlCapability uint32

const (
	DepthTest   GlCapability = gl.DEPTH_TEST
	Blend       GlCapability = gl.BLEND
	ScissorTest GlCapability = gl.SCISSOR_TEST
	CullFace    GlCapability = gl.CULL_FACE
)

type GlBlendFactor uint32

const (
	BlendZero             GlBlendFactor = gl.ZERO
	BlendOne              GlBlendFactor = gl.ONE
	BlendSrcAlpha         GlBlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha GlBlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type GlBlendEquation uint32

const (
	BlendFuncAdd GlBlendEquation = gl.FUNC_ADD
)

type GlDepthFunc uint32

const (
	DepthFuncLess   GlDepthFunc = gl.LESS
	DepthFuncLEqual GlDepthFunc = gl.LEQUAL
	DepthFuncAlways GlDepthFunc = gl.ALWAYS
)

const maxUnits = 32

// GlStateManager mirrors the context state this program touches so redundant
// GL calls are skipped. Only use it from the thread owning the context.
type GlStateManager struct {
	Caps map[GlCapability]bool

	TextureUnits      [maxUnits]uint32
	SamplerUnits      [maxUnits]uint32
	ActiveTextureUnit int

	DrawFramebuffer uint32
	ReadFramebuffer uint32
	ProgramPipeline uint32
	VertexArray     uint32

	ViewportRect [4]int
	ScissorRect  [4]int
	ClearRGBA    [4]float32

	Blending    [2]GlBlendFactor
	Equation    GlBlendEquation
	Depth       GlDepthFunc
	DepthMaskOn bool
	Cull        uint32
	Winding     uint32
	Polygon     uint32
}

var State *GlStateManager

// NewGlStateManager returns a manager holding the default values of a fresh context.
func NewGlStateManager() *GlStateManager {
	return &GlStateManager{
		Caps:        map[GlCapability]bool{},
		Blending:    [2]GlBlendFactor{BlendOne, BlendZero},
		Equation:    BlendFuncAdd,
		Depth:       DepthFuncLess,
		DepthMaskOn: true,
		Cull:        gl.BACK,
		Winding:     gl.CCW,
		Polygon:     gl.FILL,
	}
}

// update stores value in slot and calls apply when they differ.
func update[T comparable](slot *T, value T, apply func()) {
	if *slot == value {
		return
	}
	apply()
	*slot = value
}

func (s *GlStateManager) Enable(c GlCapability) {
	if !s.Caps[c] {
		gl.Enable(uint32(c))
		s.Caps[c] = true
	}
}

func (s *GlStateManager) Disable(c GlCapability) {
	if s.Caps[c] {
		gl.Disable(uint32(c))
		s.Caps[c] = false
	}
}

// SetEnabled leaves exactly caps enabled among the capabilities seen so far.
func (s *GlStateManager) SetEnabled(caps ...GlCapability) {
	keep := make(map[GlCapability]bool, len(caps))
	for _, c := range caps {
		keep[c] = true
		s.Enable(c)
	}
	for c, on := range s.Caps {
		if on && !keep[c] {
			s.Disable(c)
		}
	}
}

func (s *GlStateManager) CullFront() {
	update(&s.Cull, gl.FRONT, func() { gl.CullFace(gl.FRONT) })
}

func (s *GlStateManager) CullBack() {
	update(&s.Cull, gl.BACK, func() { gl.CullFace(gl.BACK) })
}

// FrontFace sets the winding of front faces, gl.CW or gl.CCW.
func (s *GlStateManager) FrontFace(mode uint32) {
	update(&s.Winding, mode, func() { gl.FrontFace(mode) })
}

func (s *GlStateManager) BlendFunc(src, dst GlBlendFactor) {
	update(&s.Blending, [2]GlBlendFactor{src, dst}, func() { gl.BlendFunc(uint32(src), uint32(dst)) })
}

func (s *GlStateManager) BlendEquation(mode GlBlendEquation) {
	update(&s.Equation, mode, func() { gl.BlendEquation(uint32(mode)) })
}

func (s *GlStateManager) DepthFunc(fn GlDepthFunc) {
	update(&s.Depth, fn, func() { gl.DepthFunc(uint32(fn)) })
}

func (s *GlStateManager) DepthMask(on bool) {
	update(&s.DepthMaskOn, on, func() { gl.DepthMask(on) })
}

// PolygonMode sets the rasterization of both faces, gl.FILL or gl.LINE.
func (s *GlStateManager) PolygonMode(mode uint32) {
	update(&s.Polygon, mode, func() { gl.PolygonMode(gl.FRONT_AND_BACK, mode) })
}

func (s *GlStateManager) Viewport(x, y, w, h int) {
	update(&s.ViewportRect, [4]int{x, y, w, h}, func() { gl.Viewport(int32(x), int32(y), int32(w), int32(h)) })
}

func (s *GlStateManager) Scissor(x, y, w, h int) {
	update(&s.ScissorRect, [4]int{x, y, w, h}, func() { gl.Scissor(int32(x), int32(y), int32(w), int32(h)) })
}

func (s *GlStateManager) ClearColor(r, g, b, a float32) {
	update(&s.ClearRGBA, [4]float32{r, g, b, a}, func() { gl.ClearColor(r, g, b, a) })
}

func (s *GlStateManager) ActiveTexture(unit int) {
	update(&s.ActiveTextureUnit, unit, func() { gl.ActiveTexture(gl.TEXTURE0 + uint32(unit)) })
}

// BindTextureUnit binds texture to unit. Intel drivers get the texture
// bound through its target on the active unit instead of glBindTextureUnit.
func (s *GlStateManager) BindTextureUnit(unit int, texture uint32) {
	update(&s.TextureUnits[unit], texture, func() {
		if GlEnv == nil || !GlEnv.LegacyTextureBinding {
			gl.BindTextureUnit(uint32(unit), texture)
			return
		}
		if texture == 0 {
			return
		}
		s.ActiveTexture(unit)
		gl.BindTexture(GlEnv.TextureTargets[texture], texture)
	})
}

func (s *GlStateManager) BindSampler(unit int, sampler uint32) {
	update(&s.SamplerUnits[unit], sampler, func() { gl.BindSampler(uint32(unit), sampler) })
}

// BindFramebuffer binds to gl.DRAW_FRAMEBUFFER, gl.READ_FRAMEBUFFER or both with gl.FRAMEBUFFER.
func (s *GlStateManager) BindFramebuffer(target, framebuffer uint32) {
	switch target {
	case gl.DRAW_FRAMEBUFFER:
		s.BindDrawFramebuffer(framebuffer)
	case gl.READ_FRAMEBUFFER:
		update(&s.ReadFramebuffer, framebuffer, func() { gl.BindFramebuffer(gl.READ_FRAMEBUFFER, framebuffer) })
	default:
		if s.DrawFramebuffer == framebuffer && s.ReadFramebuffer == framebuffer {
			return
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
		s.DrawFramebuffer, s.ReadFramebuffer = framebuffer, framebuffer
	}
}

func (s *GlStateManager) BindDrawFramebuffer(framebuffer uint32) {
	update(&s.DrawFramebuffer, framebuffer, func() { gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, framebuffer) })
}

func (s *GlStateManager) BindProgramPipeline(pipeline uint32) {
	update(&s.ProgramPipeline, pipeline, func() { gl.BindProgramPipeline(pipeline) })
}

func (s *GlStateManager) BindVertexArray(array uint32) {
	update(&s.VertexArray, array, func() { gl.BindVertexArray(array) })
}
