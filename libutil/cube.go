package libutil

import (
	"bloom-viewer/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// SkyboxVertices is a unit cube as 36 positions, wound so the inside faces are front facing.
var SkyboxVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

type Cube struct {
	VertexArray libgl.UnboundVertexArray
	Buffer      libgl.UnboundBuffer
}

func NewSkyboxCube() *Cube {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("Skybox Vertices")
	vbo.Allocate(SkyboxVertices, 0)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("Skybox")
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.BindBuffer(0, vbo, 0, 3*4)

	return &Cube{VertexArray: vao, Buffer: vbo}
}

func (c *Cube) Draw() {
	c.VertexArray.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(SkyboxVertices)/3))
}

func (c *Cube) Delete() {
	c.VertexArray.Delete()
	c.Buffer.Delete()
}
