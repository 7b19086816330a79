package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// MaxAttachments bounds the color attachment indices. Larger values are taken
// as GL attachment enums such as GL_DEPTH_ATTACHMENT.
const MaxAttachments = 8

type UnboundFramebuffer interface {
	LabeledGlObject
	Id() uint32
	// target is GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Bind(target uint32) BoundFramebuffer
	Check(target uint32) error
	AttachTexture(index int, texture UnboundTexture)
	AttachRenderbuffer(index int, renderbuffer UnboundRenderbuffer)
	GetTexture(index int) UnboundTexture
	// BindTargets maps fragment output locations, in order, to color attachments.
	BindTargets(attachments ...int)
	Delete()
}

type BoundFramebuffer interface {
	UnboundFramebuffer
	Clear(mask uint32)
}

type framebuffer struct {
	glId     uint32
	textures map[uint32]UnboundTexture
}

func NewFramebuffer() UnboundFramebuffer {
	fb := &framebuffer{textures: map[uint32]UnboundTexture{}}
	gl.CreateFramebuffers(1, &fb.glId)
	return fb
}

func attachmentPoint(index int) uint32 {
	if index >= 0 && index < MaxAttachments {
		return gl.COLOR_ATTACHMENT0 + uint32(index)
	}
	return uint32(index)
}

func (fb *framebuffer) Id() uint32 {
	return fb.glId
}

func (fb *framebuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, fb.glId, label)
}

func (fb *framebuffer) Bind(target uint32) BoundFramebuffer {
	State.BindFramebuffer(target, fb.glId)
	return fb
}

func (fb *framebuffer) Clear(mask uint32) {
	gl.Clear(mask)
}

func (fb *framebuffer) Check(target uint32) error {
	return FramebufferStatusError(gl.CheckNamedFramebufferStatus(fb.glId, target))
}

func (fb *framebuffer) AttachTexture(index int, texture UnboundTexture) {
	point := attachmentPoint(index)
	fb.textures[point] = texture
	gl.NamedFramebufferTexture(fb.glId, point, texture.Id(), 0)
}

func (fb *framebuffer) AttachRenderbuffer(index int, renderbuffer UnboundRenderbuffer) {
	gl.NamedFramebufferRenderbuffer(fb.glId, attachmentPoint(index), gl.RENDERBUFFER, renderbuffer.Id())
}

// GetTexture returns the texture attached at index, nil if there is none.
func (fb *framebuffer) GetTexture(index int) UnboundTexture {
	return fb.textures[attachmentPoint(index)]
}

func (fb *framebuffer) BindTargets(indices ...int) {
	if len(indices) == 0 {
		return
	}
	points := make([]uint32, len(indices))
	for i, index := range indices {
		points[i] = attachmentPoint(index)
	}
	gl.NamedFramebufferDrawBuffers(fb.glId, int32(len(points)), &points[0])
}

func (fb *framebuffer) Delete() {
	gl.DeleteFramebuffers(1, &fb.glId)
	fb.glId = 0
	fb.textures = map[uint32]UnboundTexture{}
}

var framebufferStatusText = map[uint32]string{
	gl.FRAMEBUFFER_UNDEFINED:                     "no default framebuffer (GL_FRAMEBUFFER_UNDEFINED)",
	gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "incomplete attachment (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)",
	gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "nothing attached (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)",
	gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "draw buffer without attachment (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)",
	gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "read buffer without attachment (GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER)",
	gl.FRAMEBUFFER_UNSUPPORTED:                   "attachment formats not supported together (GL_FRAMEBUFFER_UNSUPPORTED)",
	gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "mixed sample counts (GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE)",
	gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:      "mixed layered attachments (GL_FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS)",
}

// FramebufferStatusError is nil only for GL_FRAMEBUFFER_COMPLETE.
func FramebufferStatusError(status uint32) error {
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	if status == 0 {
		return fmt.Errorf("framebuffer status query failed")
	}
	if text, ok := framebufferStatusText[status]; ok {
		return fmt.Errorf("framebuffer incomplete: %s", text)
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}

type renderbuffer struct {
	glId uint32
}

type UnboundRenderbuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(internalFormat uint32, width, height int)
	Delete()
}

func NewRenderbuffer() UnboundRenderbuffer {
	var id uint32
	gl.CreateRenderbuffers(1, &id)
	return &renderbuffer{
		glId: id,
	}
}

func (rb *renderbuffer) Id() uint32 {
	return rb.glId
}

func (rb *renderbuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.RENDERBUFFER, rb.glId, label)
}

func (rb *renderbuffer) Allocate(internalFormat uint32, width, height int) {
	gl.NamedRenderbufferStorage(rb.glId, internalFormat, int32(width), int32(height))
}

func (rb *renderbuffer) Delete() {
	gl.DeleteRenderbuffers(1, &rb.glId)
	rb.glId = 0
}
