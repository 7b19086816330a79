package main

import (
	"flag"
	"runtime"
	"unsafe"

	"bloom-viewer/effects"
	"bloom-viewer/libgl"
	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var Arguments = struct {
	Width                      int
	Height                     int
	StateFile                  string
	SceneFile                  string
	AssetDir                   string
	DisableShaderCache         bool
	EnableCompatibilityProfile bool
	LogLevel                   string
	Development                bool
	BlurIterations             int
}{
	Width:          1600,
	Height:         1200,
	StateFile:      "program_state.txt",
	AssetDir:       "resources",
	LogLevel:       "info",
	BlurIterations: effects.DefaultBlurIterations,
}

func main() {
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window and offscreen target width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window and offscreen target height")
	flag.StringVar(&Arguments.StateFile, "state", Arguments.StateFile, "scene state file, loaded at startup and saved on exit")
	flag.StringVar(&Arguments.SceneFile, "scene", Arguments.SceneFile, "scene descriptor, the embedded one is used when empty")
	flag.StringVar(&Arguments.AssetDir, "assets", Arguments.AssetDir, "directory scene paths are resolved against")
	flag.BoolVar(&Arguments.DisableShaderCache, "disable-shader-cache", Arguments.DisableShaderCache, "")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.StringVar(&Arguments.LogLevel, "log-level", Arguments.LogLevel, "debug, info, warn or error")
	flag.BoolVar(&Arguments.Development, "dev", Arguments.Development, "development logger with stack traces")
	flag.IntVar(&Arguments.BlurIterations, "blur-iterations", Arguments.BlurIterations, "number of alternating blur passes")
	flag.Parse()

	if err := liblog.Init(Arguments.LogLevel, Arguments.Development); err != nil {
		panic(err)
	}
	defer liblog.Sync()

	runtime.LockOSThread()
	err := glfw.Init()
	check(err)
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	if Arguments.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	win, err := glfw.CreateWindow(Arguments.Width, Arguments.Height, "Bloom Viewer", nil, nil)
	check(err)
	win.MakeContextCurrent()

	err = gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	check(err)

	libgl.State = libgl.NewGlStateManager()
	libgl.GlEnv = libgl.GetGlEnv()
	libgl.EnableDebugOutput()
	libgl.ShaderCache.Disabled = Arguments.DisableShaderCache
	liblog.Log.Info("created context",
		zap.String("vendor", libgl.GlEnv.Vendor),
		zap.String("renderer", libgl.GlEnv.Renderer),
		zap.String("version", libgl.GlEnv.Version),
		zap.Int32("max_color_attachments", libgl.GlEnv.MaxColorAttachments))

	app, err := NewApp(win)
	check(err)

	for !win.ShouldClose() {
		app.Frame()
		win.SwapBuffers()
		glfw.PollEvents()
	}

	app.Release()
	if err := app.State.SaveFile(Arguments.StateFile); err != nil {
		liblog.Log.Error("could not save scene state", zap.String("file", Arguments.StateFile), zap.Error(err))
	}
}

func check(err error) {
	if err != nil {
		liblog.Log.Fatal("setup failed", zap.Error(err))
	}
}
