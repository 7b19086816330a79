package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"bloom-viewer/effects"
	"bloom-viewer/libgl"
	"bloom-viewer/liblog"
	"bloom-viewer/libscn"
	"bloom-viewer/libstate"
	"bloom-viewer/libutil"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// App owns everything the frame loop and the window callbacks share.
type App struct {
	Window *glfw.Window
	State  *libstate.State
	Input  InputManager
	Gui    *ImGui
	Mouse  libstate.MouseTracker

	ViewportWidth, ViewportHeight int
	DumpRequested                 bool
	Wireframe                     bool

	litShader         libgl.UnboundShaderPipeline
	transparentShader libgl.UnboundShaderPipeline
	skyboxShader      libgl.UnboundShaderPipeline
	hdr               *effects.HDRTarget
	bloom             *effects.BloomEffect
	skyboxCube        *libutil.Cube
	cubemap           libgl.UnboundTexture
	opaque            []sceneObject
	transparent       []sceneObject

	// released in reverse order
	resources []libutil.Deleter
}

type sceneObject struct {
	libscn.ObjectDesc
	Model *libscn.Model
}

type releaseFunc func()

func (f releaseFunc) Delete() { f() }

func NewApp(win *glfw.Window) (app *App, err error) {
	app = &App{
		Window: win,
		State:  libstate.NewState(),
	}
	defer func() {
		if err != nil {
			app.Release()
		}
	}()

	if err := app.State.LoadFile(Arguments.StateFile); err != nil {
		liblog.Log.Warn("could not load scene state", zap.String("file", Arguments.StateFile), zap.Error(err))
	}
	win.SetInputMode(glfw.CursorMode, cursorMode(app.State.UIEnabled))
	app.ViewportWidth, app.ViewportHeight = win.GetFramebufferSize()

	scene, err := loadScene()
	if err != nil {
		return app, err
	}

	keys := []glfw.Key{glfw.KeyEscape}
	for key := range movementKeys {
		keys = append(keys, key)
	}
	app.Input = NewInputManager(win, keys...)

	if err = app.createPipelines(); err != nil {
		return app, err
	}
	if err = app.createTargets(); err != nil {
		return app, err
	}

	app.skyboxCube = libutil.NewSkyboxCube()
	app.own(app.skyboxCube)
	faces := scene.Skybox.Faces()
	for i := range faces {
		faces[i] = filepath.Join(Arguments.AssetDir, faces[i])
	}
	app.cubemap = NewCubemap(faces)
	app.own(app.cubemap)

	app.loadObjects(scene)

	imguiShader, err := libgl.NewVertFragPipeline(Res_ImguiVshSrc, Res_ImguiFshSrc, nil)
	if err != nil {
		return app, fmt.Errorf("imgui shader: %w", err)
	}
	app.Gui = NewImGui(imguiShader)
	app.own(app.Gui)

	app.installCallbacks()
	return app, nil
}

func (app *App) own(resource libutil.Deleter) {
	app.resources = append(app.resources, resource)
}

func loadScene() (*libscn.SceneDesc, error) {
	if Arguments.SceneFile == "" {
		return libscn.ParseScene(bytes.NewReader(Res_DefaultScene))
	}
	return libscn.LoadSceneFile(Arguments.SceneFile)
}

func (app *App) createPipelines() (err error) {
	app.litShader, err = libgl.NewVertFragPipeline(Res_LitVshSrc, Res_LitFshSrc, nil)
	if err != nil {
		return fmt.Errorf("lit shader: %w", err)
	}
	app.own(app.litShader)
	libscn.BindMaterialUnits(app.litShader)

	app.transparentShader, err = libgl.NewVertFragPipeline(Res_LitVshSrc, Res_LitFshSrc, map[string]string{"TRANSPARENT": "true"})
	if err != nil {
		return fmt.Errorf("transparent shader: %w", err)
	}
	app.transparentShader.SetDebugLabel("transparent")
	app.own(app.transparentShader)
	libscn.BindMaterialUnits(app.transparentShader)

	app.skyboxShader, err = libgl.NewVertFragPipeline(Res_SkyboxVshSrc, Res_SkyboxFshSrc, nil)
	if err != nil {
		return fmt.Errorf("skybox shader: %w", err)
	}
	app.own(app.skyboxShader)
	app.skyboxShader.SetUniform("skybox", 0)
	return nil
}

// createTargets sizes the offscreen targets after the initial framebuffer. They are not resized later.
func (app *App) createTargets() (err error) {
	width, height := app.ViewportWidth, app.ViewportHeight

	app.hdr, err = effects.NewHDRTarget(width, height)
	if err != nil {
		return err
	}
	app.own(app.hdr)

	pair, err := effects.NewPingPongPair(width, height)
	if err != nil {
		return err
	}

	blurShader, err := libgl.NewVertFragPipeline(Res_QuadVshSrc, Res_BlurFshSrc, nil)
	if err != nil {
		pair.Delete()
		return fmt.Errorf("blur shader: %w", err)
	}
	compositeShader, err := libgl.NewVertFragPipeline(Res_QuadVshSrc, Res_BloomFinalFshSrc, nil)
	if err != nil {
		pair.Delete()
		blurShader.Delete()
		return fmt.Errorf("bloom composite shader: %w", err)
	}

	app.bloom = effects.NewBloomEffect(Arguments.BlurIterations, app.hdr, pair, blurShader, compositeShader)
	app.own(releaseFunc(app.bloom.Release))
	app.own(releaseFunc(libutil.DeleteQuad))
	return nil
}

// loadObjects uploads every model the scene references once. Objects whose model fails to load are skipped.
func (app *App) loadObjects(scene *libscn.SceneDesc) {
	fallback := libscn.NewFallbackTextures()
	app.own(fallback)

	models := map[string]*libscn.Model{}
	failed := map[string]bool{}
	load := func(desc libscn.ObjectDesc) *libscn.Model {
		path := filepath.Join(Arguments.AssetDir, desc.Model)
		if model, ok := models[path]; ok {
			return model
		}
		if failed[path] {
			return nil
		}
		data, err := libscn.LoadModelFile(path)
		if err != nil {
			liblog.Log.Error("could not load model", zap.String("object", desc.Name), zap.String("file", path), zap.Error(err))
			failed[path] = true
			return nil
		}
		model := libscn.UploadModel(data, filepath.Dir(path), fallback)
		app.own(model)
		models[path] = model
		liblog.Log.Info("loaded model", zap.String("file", path), zap.Int("meshes", len(model.Meshes)), zap.Int("vertices", data.VertexCount()))
		return model
	}

	opaque, transparent := scene.Partition()
	for _, desc := range opaque {
		if model := load(desc); model != nil {
			app.opaque = append(app.opaque, sceneObject{ObjectDesc: desc, Model: model})
		}
	}
	for _, desc := range transparent {
		if model := load(desc); model != nil {
			app.transparent = append(app.transparent, sceneObject{ObjectDesc: desc, Model: model})
		}
	}
}

// Release frees GPU resources in reverse creation order.
func (app *App) Release() {
	libutil.DeleteAll(app.resources...)
	app.resources = nil
}
