package effects

import (
	"bloom-viewer/libgl"
	"bloom-viewer/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

const (
	SceneUnit = 0
	BlurUnit  = 1
)

// BloomEffect blurs the bright pass of an HDR target through a ping-pong pair
// and composites the result over the scene with exposure tone mapping.
type BloomEffect struct {
	Iterations      int
	Enabled         bool
	Exposure        float32
	blurShader      libgl.UnboundShaderPipeline
	compositeShader libgl.UnboundShaderPipeline
	target          *HDRTarget
	pair            *PingPongPair
	sampler         libgl.UnboundSampler
	schedule        []BlurPass
}

// NewBloomEffect takes ownership of both pipelines and the pair, not of the HDR target.
func NewBloomEffect(iterations int, target *HDRTarget, pair *PingPongPair, blur, composite libgl.UnboundShaderPipeline) *BloomEffect {
	sampler := libgl.NewSampler()
	sampler.SetDebugLabel("Bloom Sampler")
	sampler.FilterMode(gl.LINEAR, gl.LINEAR)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, 0)

	blur.SetUniform("image", SceneUnit)
	composite.SetUniform("scene", SceneUnit)
	composite.SetUniform("bloomBlur", BlurUnit)

	return &BloomEffect{
		Iterations:      iterations,
		Enabled:         true,
		Exposure:        1.0,
		blurShader:      blur,
		compositeShader: composite,
		target:          target,
		pair:            pair,
		sampler:         sampler,
		schedule:        BlurSchedule(iterations),
	}
}

func (effect *BloomEffect) Release() {
	effect.blurShader.Delete()
	effect.compositeShader.Delete()
	effect.pair.Delete()
	effect.sampler.Delete()
}

// bindSampler overrides the filtering of the bloom inputs. unbindSampler must
// follow before material textures are drawn again.
func (effect *BloomEffect) bindSampler() {
	effect.sampler.Bind(SceneUnit)
	effect.sampler.Bind(BlurUnit)
}

func (effect *BloomEffect) unbindSampler() {
	libgl.State.BindSampler(SceneUnit, 0)
	libgl.State.BindSampler(BlurUnit, 0)
}

// Blur runs the schedule and returns the texture holding the final pass. With
// zero iterations the unblurred bright pass is returned.
func (effect *BloomEffect) Blur() libgl.UnboundTexture {
	defer libgl.PushDebugGroup("Blur Bright Pass")()

	if len(effect.schedule) != effect.Iterations {
		effect.schedule = BlurSchedule(effect.Iterations)
	}
	if len(effect.schedule) == 0 {
		return effect.target.BrightPass()
	}

	libgl.State.Disable(libgl.DepthTest)
	libgl.State.Disable(libgl.Blend)
	libgl.State.Viewport(0, 0, effect.pair.Width, effect.pair.Height)
	effect.blurShader.Bind()
	effect.bindSampler()
	defer effect.unbindSampler()

	for _, pass := range effect.schedule {
		effect.pair.Framebuffers[pass.Target].Bind(gl.DRAW_FRAMEBUFFER)
		effect.blurShader.SetUniform("horizontal", pass.Horizontal)
		if pass.FromBrightPass {
			effect.target.BrightPass().Bind(SceneUnit)
		} else {
			effect.pair.Textures[pass.Source].Bind(SceneUnit)
		}
		libutil.DrawQuad()
	}

	return effect.pair.Textures[FinalTarget(effect.schedule)]
}

// Composite draws the tone mapped scene into the currently bound draw framebuffer.
func (effect *BloomEffect) Composite(blurred libgl.UnboundTexture) {
	defer libgl.PushDebugGroup("Composite Bloom")()

	libgl.State.Disable(libgl.DepthTest)
	libgl.State.Disable(libgl.Blend)
	effect.compositeShader.Bind()
	effect.bindSampler()
	defer effect.unbindSampler()
	effect.compositeShader.SetUniform("bloom", effect.Enabled)
	effect.compositeShader.SetUniform("exposure", effect.Exposure)
	effect.target.Scene().Bind(SceneUnit)
	blurred.Bind(BlurUnit)
	libutil.DrawQuad()
	libgl.State.Enable(libgl.DepthTest)
}
