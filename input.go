package main

import (
	"bloom-viewer/libstate"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputManager samples the keyboard once per frame so held keys can be polled.
type InputManager interface {
	Time() float32
	TimeDelta() float32
	IsKeyDown(key glfw.Key) bool
	Update(window *glfw.Window)
}

type input struct {
	curr   inputState
	prev   inputState
	polled []glfw.Key
}

type inputState struct {
	time float32
	keys []bool
}

// movementKeys maps the polled movement keys to camera directions.
var movementKeys = map[glfw.Key]libstate.CameraMovement{
	glfw.KeyW: libstate.Forward,
	glfw.KeyS: libstate.Backward,
	glfw.KeyA: libstate.Left,
	glfw.KeyD: libstate.Right,
}

func NewInputManager(win *glfw.Window, polled ...glfw.Key) *input {
	i := &input{
		curr:   inputState{keys: make([]bool, glfw.KeyLast+1)},
		prev:   inputState{keys: make([]bool, glfw.KeyLast+1)},
		polled: polled,
	}

	i.Update(win)
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)

	return i
}

func (i *input) Time() float32 {
	return i.curr.time
}

func (i *input) TimeDelta() float32 {
	return i.curr.time - i.prev.time
}

func (i *input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *input) Update(win *glfw.Window) {
	keys := i.prev.keys
	i.prev = i.curr

	for _, key := range i.polled {
		keys[key] = win.GetKey(key) != glfw.Release
	}

	i.curr = inputState{
		time: float32(glfw.GetTime()),
		keys: keys,
	}
}

func cursorMode(uiEnabled bool) int {
	if uiEnabled {
		return glfw.CursorNormal
	}
	return glfw.CursorDisabled
}

// keyResult reports the effects of a key event that reach beyond the viewer state.
type keyResult struct {
	UIToggled     bool
	DumpRequested bool
}

// dispatchKey applies a key event to the viewer state. F1, F and F12 act on press.
// Bloom and exposure sample the held keys through isDown on every event.
func dispatchKey(state *libstate.State, key glfw.Key, action glfw.Action, isDown func(glfw.Key) bool) (result keyResult) {
	if action == glfw.Press {
		switch key {
		case glfw.KeyF1:
			state.ToggleUI()
			result.UIToggled = true
		case glfw.KeyF:
			state.ToggleSpotlight()
		case glfw.KeyF12:
			result.DumpRequested = true
		}
	}

	state.PollBloomKey(isDown(glfw.KeyB))
	state.AdjustExposure(isDown(glfw.KeyQ), isDown(glfw.KeyE))
	return
}

// installCallbacks routes window events to the overlay first and then to the viewer.
func (app *App) installCallbacks() {
	win := app.Window

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.ViewportWidth, app.ViewportHeight = width, height
	})

	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		app.Gui.CursorPos(x, y)
		if !app.State.MouseLookEnabled {
			app.Mouse.Reset()
			return
		}
		dx, dy := app.Mouse.Delta(x, y)
		app.State.Camera.ProcessMouseMovement(dx, dy, true)
	})

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.Gui.MouseButton(button, action)
	})

	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		app.Gui.Scroll(x, y)
		if app.State.UIEnabled && app.Gui.IO.WantCaptureMouse() {
			return
		}
		app.State.Camera.ProcessMouseScroll(float32(y))
	})

	win.SetCharCallback(func(w *glfw.Window, char rune) {
		app.Gui.Char(char)
	})

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.Gui.Key(key, action)

		result := dispatchKey(app.State, key, action, func(k glfw.Key) bool {
			return w.GetKey(k) == glfw.Press
		})
		if result.UIToggled {
			w.SetInputMode(glfw.CursorMode, cursorMode(app.State.UIEnabled))
		}
		if result.DumpRequested {
			app.DumpRequested = true
		}
	})
}
