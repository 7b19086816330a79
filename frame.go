package main

import (
	"bloom-viewer/libgl"
	"bloom-viewer/libstate"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame advances input and renders one frame into the default framebuffer.
func (app *App) Frame() {
	app.Input.Update(app.Window)
	app.processInput(app.Input.TimeDelta())

	frame := libstate.Frame{
		Time:   app.Input.Time(),
		Aspect: float32(app.hdr.Width) / float32(app.hdr.Height),
	}
	state := app.State

	cc := state.ClearColor
	libgl.State.ClearColor(cc[0], cc[1], cc[2], 1)
	libgl.State.BindDrawFramebuffer(0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	app.drawScene(frame)
	app.drawSkybox(frame)

	blurred := app.bloom.Blur()

	libgl.State.BindDrawFramebuffer(0)
	libgl.State.Viewport(0, 0, app.ViewportWidth, app.ViewportHeight)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	app.bloom.Enabled = state.BloomEnabled
	app.bloom.Exposure = state.Exposure
	app.bloom.Composite(blurred)

	if app.DumpRequested {
		app.DumpRequested = false
		DumpTargets(DumpDir, state.Exposure, []dumpTarget{
			{Name: "scene", Texture: app.hdr.Scene()},
			{Name: "bright", Texture: app.hdr.BrightPass()},
			{Name: "blur", Texture: blurred},
		})
	}

	if state.UIEnabled {
		app.Gui.NewFrame()
		app.drawPanels()
		app.Gui.Draw()
	}
}

func (app *App) processInput(dt float32) {
	if app.Input.IsKeyDown(glfw.KeyEscape) {
		app.Window.SetShouldClose(true)
	}
	for key, direction := range movementKeys {
		if app.Input.IsKeyDown(key) {
			app.State.Camera.ProcessKeyboard(direction, dt)
		}
	}
}

// drawScene renders opaque objects, then the light markers, then transparent objects into the HDR target.
func (app *App) drawScene(frame libstate.Frame) {
	defer libgl.PushDebugGroup("Draw Scene")()

	hdr := app.hdr.Bind()
	libgl.State.Viewport(0, 0, app.hdr.Width, app.hdr.Height)
	libgl.State.SetEnabled(libgl.DepthTest, libgl.CullFace)
	libgl.State.CullFront()
	libgl.State.FrontFace(gl.CW)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	libgl.State.DepthMask(true)
	hdr.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if app.Wireframe {
		libgl.State.PolygonMode(gl.LINE)
		defer libgl.State.PolygonMode(gl.FILL)
	}

	lights := libstate.PointLightPositions(frame.Time)

	app.litShader.Bind()
	app.State.ApplyLighting(app.litShader, frame)
	for _, obj := range app.opaque {
		if obj.Marker == nil {
			app.drawObject(app.litShader, obj, frame.Time, lights)
		}
	}
	for _, obj := range app.opaque {
		if obj.Marker != nil {
			app.drawObject(app.litShader, obj, frame.Time, lights)
		}
	}

	if len(app.transparent) == 0 {
		return
	}
	app.transparentShader.Bind()
	app.State.ApplyLighting(app.transparentShader, frame)
	libgl.State.Enable(libgl.Blend)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	for _, obj := range app.transparent {
		app.drawObject(app.transparentShader, obj, frame.Time, lights)
	}
	libgl.State.Disable(libgl.Blend)
}

func (app *App) drawObject(shader libgl.UnboundShaderPipeline, obj sceneObject, t float32, lights [2]mgl32.Vec3) {
	shader.SetUniform("model", obj.Transform(t, lights))
	obj.Model.Draw()
}

// drawSkybox fills the pixels no geometry was drawn to. The cube is drawn at
// the far plane with the camera translation removed, its inside faces front facing.
func (app *App) drawSkybox(frame libstate.Frame) {
	defer libgl.PushDebugGroup("Draw Skybox")()

	libgl.State.CullBack()
	libgl.State.FrontFace(gl.CCW)
	libgl.State.DepthFunc(libgl.DepthFuncLEqual)
	app.skyboxShader.Bind()
	app.skyboxShader.SetUniform("view", app.State.Camera.ViewMatrix().Mat3().Mat4())
	app.skyboxShader.SetUniform("projection", app.State.Projection(frame.Aspect))
	app.cubemap.Bind(0)
	app.skyboxCube.Draw()
	libgl.State.DepthFunc(libgl.DepthFuncLess)
}
