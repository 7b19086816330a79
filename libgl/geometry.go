package libgl

import (
	"encoding/binary"
	"fmt"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

// UnboundBuffer is an immutable storage buffer. Grow replaces the storage
// with a larger one, which also replaces the GL name.
type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	// Allocate sets the storage to a copy of data, which must have a fixed size.
	Allocate(data any, flags int)
	Grow(size int) bool
	WriteRange(offset int, size int, data any)
	Delete()
}

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	allocated bool
}

func NewBuffer() UnboundBuffer {
	b := &buffer{}
	gl.CreateBuffers(1, &b.glId)
	return b
}

func (b *buffer) Id() uint32 {
	return b.glId
}

func (b *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, b.glId, label)
}

func (b *buffer) Allocate(data any, flags int) {
	if b.allocated {
		liblog.Log.Panic("buffer storage is already allocated", zap.Uint32("buffer", b.glId))
	}
	size := binary.Size(data)
	switch {
	case size < 0:
		liblog.Log.Panic(fmt.Sprintf("%T does not have a fixed size", data))
	case size == 0:
		liblog.Log.Warn("skipping zero size buffer allocation", zap.Uint32("buffer", b.glId))
		return
	}
	gl.NamedBufferStorage(b.glId, size, Pointer(data), uint32(flags))
	b.size, b.flags, b.allocated = size, uint32(flags), true
}

// Grow makes room for at least size bytes and keeps the current contents.
// Vertex arrays must be pointed at the new name when it reports true.
func (b *buffer) Grow(size int) bool {
	if size <= b.size {
		return false
	}
	if !b.allocated {
		b.flags = gl.DYNAMIC_STORAGE_BIT
	}
	newSize := grownSize(b.size, size)

	var grown uint32
	gl.CreateBuffers(1, &grown)
	gl.NamedBufferStorage(grown, newSize, nil, b.flags)
	if b.size > 0 {
		gl.CopyNamedBufferSubData(b.glId, grown, 0, 0, b.size)
	}
	gl.DeleteBuffers(1, &b.glId)
	b.glId, b.size, b.allocated = grown, newSize, true
	return true
}

// grownSize doubles small buffers and grows large ones by a quarter until required fits.
func grownSize(current, required int) int {
	if required > 2*current {
		return required
	}
	if current < 16_384 {
		return 2 * current
	}
	size := current
	for size < required {
		size += size / 4
	}
	return size
}

func (b *buffer) WriteRange(offset int, size int, data any) {
	gl.NamedBufferSubData(b.glId, offset, size, Pointer(data))
}

func (b *buffer) Delete() {
	gl.DeleteBuffers(1, &b.glId)
	b.glId = 0
}

type UnboundVertexArray interface {
	LabeledGlObject
	// Layout describes attribute attributeIndex as size components of dataType at offset within binding bufferIndex.
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	// ReBindBuffer attaches vbo with the offset and stride of the previous BindBuffer call.
	ReBindBuffer(bufferIndex int, vbo UnboundBuffer)
	BindElementBuffer(ebo UnboundBuffer)
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

type vertexBinding struct {
	offset, stride int
}

type vertexArray struct {
	glId     uint32
	bindings map[int]vertexBinding
}

func NewVertexArray() UnboundVertexArray {
	vao := &vertexArray{bindings: map[int]vertexBinding{}}
	gl.CreateVertexArrays(1, &vao.glId)
	return vao
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return vao
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	attrib := uint32(attributeIndex)
	gl.EnableVertexArrayAttrib(vao.glId, attrib)
	gl.VertexArrayAttribFormat(vao.glId, attrib, int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, attrib, uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	vao.bindings[bufferIndex] = vertexBinding{offset, stride}
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *vertexArray) ReBindBuffer(bufferIndex int, vbo UnboundBuffer) {
	b := vao.bindings[bufferIndex]
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), b.offset, int32(b.stride))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	if State != nil && State.VertexArray == vao.glId {
		State.VertexArray = 0
	}
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
