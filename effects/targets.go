package effects

import (
	"fmt"

	"bloom-viewer/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

const (
	HDRColorFormat = gl.RGBA16F
	HDRDepthFormat = gl.DEPTH_COMPONENT24
)

// HDRTarget is the capture framebuffer. Attachment 0 receives the lit scene,
// attachment 1 the bright pass.
type HDRTarget struct {
	Framebuffer   libgl.UnboundFramebuffer
	Color         [2]libgl.UnboundTexture
	Depth         libgl.UnboundRenderbuffer
	Width, Height int
}

func NewHDRTarget(width, height int) (*HDRTarget, error) {
	target := &HDRTarget{
		Framebuffer: libgl.NewFramebuffer(),
		Depth:       libgl.NewRenderbuffer(),
		Width:       width,
		Height:      height,
	}
	target.Framebuffer.SetDebugLabel("HDR Target")

	for i := range target.Color {
		target.Color[i] = newColorTexture(width, height, fmt.Sprintf("HDR Color %d", i))
		target.Framebuffer.AttachTexture(i, target.Color[i])
	}
	target.Depth.SetDebugLabel("HDR Depth")
	target.Depth.Allocate(HDRDepthFormat, width, height)
	target.Framebuffer.AttachRenderbuffer(gl.DEPTH_ATTACHMENT, target.Depth)
	target.Framebuffer.BindTargets(0, 1)

	if err := target.Framebuffer.Check(gl.DRAW_FRAMEBUFFER); err != nil {
		target.Delete()
		return nil, fmt.Errorf("hdr target incomplete: %w", err)
	}
	return target, nil
}

func (target *HDRTarget) Bind() libgl.BoundFramebuffer {
	return target.Framebuffer.Bind(gl.DRAW_FRAMEBUFFER)
}

// Scene is the lit color attachment.
func (target *HDRTarget) Scene() libgl.UnboundTexture {
	return target.Framebuffer.GetTexture(0)
}

// BrightPass is the color attachment holding fragments above the brightness threshold.
func (target *HDRTarget) BrightPass() libgl.UnboundTexture {
	return target.Framebuffer.GetTexture(1)
}

func (target *HDRTarget) Delete() {
	target.Framebuffer.Delete()
	target.Depth.Delete()
	for _, tex := range target.Color {
		tex.Delete()
	}
}

// PingPongPair holds two single attachment framebuffers the blur alternates between.
type PingPongPair struct {
	Framebuffers  [2]libgl.UnboundFramebuffer
	Textures      [2]libgl.UnboundTexture
	Width, Height int
}

func NewPingPongPair(width, height int) (*PingPongPair, error) {
	pair := &PingPongPair{Width: width, Height: height}
	for i := range pair.Framebuffers {
		fbo := libgl.NewFramebuffer()
		fbo.SetDebugLabel(fmt.Sprintf("Ping Pong %d", i))
		tex := newColorTexture(width, height, fmt.Sprintf("Ping Pong Color %d", i))
		fbo.AttachTexture(0, tex)
		fbo.BindTargets(0)
		pair.Framebuffers[i] = fbo
		pair.Textures[i] = tex

		if err := fbo.Check(gl.DRAW_FRAMEBUFFER); err != nil {
			pair.Delete()
			return nil, fmt.Errorf("ping pong framebuffer %d incomplete: %w", i, err)
		}
	}
	return pair, nil
}

func (pair *PingPongPair) Delete() {
	for i := range pair.Framebuffers {
		if pair.Framebuffers[i] != nil {
			pair.Framebuffers[i].Delete()
		}
		if pair.Textures[i] != nil {
			pair.Textures[i].Delete()
		}
	}
}

func newColorTexture(width, height int, label string) libgl.UnboundTexture {
	tex := libgl.NewTexture(gl.TEXTURE_2D)
	tex.SetDebugLabel(label)
	tex.Allocate(1, HDRColorFormat, width, height, 0)
	tex.FilterMode(gl.LINEAR, gl.LINEAR)
	tex.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE, 0)
	return tex
}
