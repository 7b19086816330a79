package main

import (
	"bloom-viewer/libgl"
	"bloom-viewer/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// ImGui draws the settings overlay on top of the composited frame.
type ImGui struct {
	IO        imgui.IO
	FrameTime float32
	display   imgui.Vec2
	context   *imgui.Context
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	shader    libgl.UnboundShaderPipeline
}

var imguiKeys = map[int]glfw.Key{
	imgui.KeyTab:        glfw.KeyTab,
	imgui.KeyLeftArrow:  glfw.KeyLeft,
	imgui.KeyRightArrow: glfw.KeyRight,
	imgui.KeyUpArrow:    glfw.KeyUp,
	imgui.KeyDownArrow:  glfw.KeyDown,
	imgui.KeyPageUp:     glfw.KeyPageUp,
	imgui.KeyPageDown:   glfw.KeyPageDown,
	imgui.KeyHome:       glfw.KeyHome,
	imgui.KeyEnd:        glfw.KeyEnd,
	imgui.KeyInsert:     glfw.KeyInsert,
	imgui.KeyDelete:     glfw.KeyDelete,
	imgui.KeyBackspace:  glfw.KeyBackspace,
	imgui.KeySpace:      glfw.KeySpace,
	imgui.KeyEnter:      glfw.KeyEnter,
	imgui.KeyEscape:     glfw.KeyEscape,
	imgui.KeyA:          glfw.KeyA,
	imgui.KeyC:          glfw.KeyC,
	imgui.KeyV:          glfw.KeyV,
	imgui.KeyX:          glfw.KeyX,
	imgui.KeyY:          glfw.KeyY,
	imgui.KeyZ:          glfw.KeyZ,
}

var imguiIndexTypes = map[int]uint32{
	1: gl.UNSIGNED_BYTE,
	2: gl.UNSIGNED_SHORT,
	4: gl.UNSIGNED_INT,
}

func NewImGui(shader libgl.UnboundShaderPipeline) *ImGui {
	gui := &ImGui{
		context:   imgui.CreateContext(nil),
		FrameTime: float32(glfw.GetTime()),
		shader:    shader,
		vbo:       libgl.NewBuffer(),
		ebo:       libgl.NewBuffer(),
		vao:       libgl.NewVertexArray(),
	}
	gui.IO = imgui.CurrentIO()
	imgui.StyleColorsDark()
	gui.updateDisplaySize()
	for imguiKey, key := range imguiKeys {
		gui.IO.KeyMap(imguiKey, int(key))
	}

	stride, posOffset, uvOffset, colorOffset := imgui.VertexBufferLayout()
	gui.vbo.SetDebugLabel("ImGui Vertices")
	gui.ebo.SetDebugLabel("ImGui Elements")
	gui.vao.SetDebugLabel("ImGui")
	gui.vao.Layout(0, 0, 2, gl.FLOAT, false, posOffset)
	gui.vao.Layout(0, 1, 2, gl.FLOAT, false, uvOffset)
	gui.vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, colorOffset)
	gui.vao.BindBuffer(0, gui.vbo, 0, stride)
	gui.vao.BindElementBuffer(gui.ebo)

	font := gui.IO.Fonts().TextureDataRGBA32()
	gui.atlas = libgl.NewTexture(gl.TEXTURE_2D)
	gui.atlas.SetDebugLabel("ImGui Font Atlas")
	gui.atlas.Allocate(1, gl.RGBA8, font.Width, font.Height, 0)
	gui.atlas.Load(0, font.Width, font.Height, 0, gl.RGBA, (*byte)(font.Pixels))
	gui.atlas.FilterMode(gl.LINEAR, gl.LINEAR)
	gui.IO.Fonts().SetTextureID(imgui.TextureID(gui.atlas.Id()))

	return gui
}

func (gui *ImGui) updateDisplaySize() {
	w, h := glfw.GetCurrentContext().GetSize()
	gui.display = imgui.Vec2{X: float32(w), Y: float32(h)}
	gui.IO.SetDisplaySize(gui.display)
}

func (gui *ImGui) CursorPos(x, y float64) {
	gui.IO.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
}

func (gui *ImGui) MouseButton(button glfw.MouseButton, action glfw.Action) {
	gui.IO.SetMouseButtonDown(int(button), action == glfw.Press)
}

func (gui *ImGui) Scroll(x, y float64) {
	gui.IO.AddMouseWheelDelta(float32(x), float32(y))
}

func (gui *ImGui) Char(char rune) {
	gui.IO.AddInputCharacters(string(char))
}

func (gui *ImGui) Key(key glfw.Key, action glfw.Action) {
	switch {
	case key == glfw.KeyUnknown:
		return
	case action == glfw.Press:
		gui.IO.KeyPress(int(key))
	case action == glfw.Release:
		gui.IO.KeyRelease(int(key))
	}
	gui.IO.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	gui.IO.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	gui.IO.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	gui.IO.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (gui *ImGui) NewFrame() {
	gui.updateDisplaySize()
	now := float32(glfw.GetTime())
	if delta := now - gui.FrameTime; delta > 0 {
		gui.IO.SetDeltaTime(delta)
	}
	gui.FrameTime = now
	imgui.NewFrame()
}

func (gui *ImGui) Draw() {
	defer libgl.PushDebugGroup("Draw ImGui")()

	imgui.Render()
	display := gui.display
	fbWidth, fbHeight := glfw.GetCurrentContext().GetFramebufferSize()
	if display.X <= 0 || display.Y <= 0 || fbWidth == 0 || fbHeight == 0 {
		return
	}
	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{X: float32(fbWidth) / display.X, Y: float32(fbHeight) / display.Y})

	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.BindSampler(0, 0)
	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Get(gl.VERTEX_SHADER).SetUniform("u_proj_mat", mgl32.Ortho2D(0, display.X, display.Y, 0))

	for _, list := range drawData.CommandLists() {
		gui.upload(list)
		gui.drawCommands(list, fbHeight)
	}
	libgl.State.SetEnabled()
}

func (gui *ImGui) upload(list imgui.DrawList) {
	vertices, vertexBytes := list.VertexBuffer()
	if gui.vbo.Grow(vertexBytes) {
		gui.vao.ReBindBuffer(0, gui.vbo)
	}
	if vertexBytes > 0 {
		gui.vbo.WriteRange(0, vertexBytes, vertices)
	}

	indices, indexBytes := list.IndexBuffer()
	if gui.ebo.Grow(indexBytes) {
		gui.vao.BindElementBuffer(gui.ebo)
	}
	if indexBytes > 0 {
		gui.ebo.WriteRange(0, indexBytes, indices)
	}
}

func (gui *ImGui) drawCommands(list imgui.DrawList, fbHeight int) {
	indexSize := imgui.IndexBufferLayout()
	indexType := imguiIndexTypes[indexSize]
	for _, cmd := range list.Commands() {
		if cmd.HasUserCallback() {
			cmd.CallUserCallback(list)
			continue
		}
		clip := cmd.ClipRect()
		libgl.State.Scissor(int(clip.X), max(fbHeight-int(clip.W), 0), int(clip.Z-clip.X), int(clip.W-clip.Y))
		libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType,
			uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
	}
}

func (gui *ImGui) Delete() {
	libutil.DeleteAll(gui.shader, gui.atlas, gui.ebo, gui.vbo, gui.vao)
	gui.context.Destroy()
}
