package main

import (
	"testing"

	"bloom-viewer/libstate"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestMovementKeys(t *testing.T) {
	assert.Equal(t, map[glfw.Key]libstate.CameraMovement{
		glfw.KeyW: libstate.Forward,
		glfw.KeyS: libstate.Backward,
		glfw.KeyA: libstate.Left,
		glfw.KeyD: libstate.Right,
	}, movementKeys)
}

func TestCursorMode(t *testing.T) {
	assert.Equal(t, glfw.CursorNormal, cursorMode(true))
	assert.Equal(t, glfw.CursorDisabled, cursorMode(false))
}

func TestInputKeys(t *testing.T) {
	i := &input{
		curr: inputState{time: 2, keys: make([]bool, glfw.KeyLast+1)},
		prev: inputState{time: 1.5, keys: make([]bool, glfw.KeyLast+1)},
	}
	i.curr.keys[glfw.KeyW] = true
	i.prev.keys[glfw.KeyS] = true

	assert.True(t, i.IsKeyDown(glfw.KeyW))
	assert.False(t, i.IsKeyDown(glfw.KeyS))
	assert.False(t, i.IsKeyDown(glfw.KeyA))
	assert.Equal(t, float32(0.5), i.TimeDelta())
	assert.Equal(t, float32(2), i.Time())
}

type keyEvent struct {
	key    glfw.Key
	action glfw.Action
	held   []glfw.Key
}

type keyOutcome struct {
	ui, mouseLook, spotlight, bloom bool
	exposure                        float32
	uiToggled, dump                 bool
}

func press(key glfw.Key, held ...glfw.Key) keyEvent {
	return keyEvent{key: key, action: glfw.Press, held: append(held, key)}
}

func repeat(key glfw.Key, held ...glfw.Key) keyEvent {
	return keyEvent{key: key, action: glfw.Repeat, held: append(held, key)}
}

func release(key glfw.Key, held ...glfw.Key) keyEvent {
	return keyEvent{key: key, action: glfw.Release, held: held}
}

func TestDispatchKey(t *testing.T) {
	idle := keyOutcome{mouseLook: true, spotlight: true, bloom: true, exposure: 1}
	with := func(change func(o *keyOutcome)) keyOutcome {
		o := idle
		change(&o)
		return o
	}

	tests := []struct {
		name   string
		events []keyEvent
		want   keyOutcome
	}{
		{"f1 press shows the overlay", []keyEvent{press(glfw.KeyF1)}, with(func(o *keyOutcome) {
			o.ui, o.mouseLook, o.uiToggled = true, false, true
		})},
		{"f1 repeat and release do nothing", []keyEvent{repeat(glfw.KeyF1), release(glfw.KeyF1)}, idle},
		{"f press toggles the spotlight", []keyEvent{press(glfw.KeyF)}, with(func(o *keyOutcome) {
			o.spotlight = false
		})},
		{"f repeat and release do nothing", []keyEvent{repeat(glfw.KeyF), release(glfw.KeyF)}, idle},
		{"f12 press requests a dump", []keyEvent{press(glfw.KeyF12)}, with(func(o *keyOutcome) {
			o.dump = true
		})},
		{"held b flips bloom once", []keyEvent{
			press(glfw.KeyB),
			repeat(glfw.KeyB),
			press(glfw.KeyW, glfw.KeyB),
			repeat(glfw.KeyB, glfw.KeyW),
		}, with(func(o *keyOutcome) {
			o.bloom = false
		})},
		{"b pressed again after release flips bloom back", []keyEvent{
			press(glfw.KeyB),
			release(glfw.KeyB),
			press(glfw.KeyB),
		}, idle},
		{"e raises exposure", []keyEvent{press(glfw.KeyE)}, with(func(o *keyOutcome) {
			o.exposure = 1.1
		})},
		{"q lowers exposure", []keyEvent{press(glfw.KeyQ)}, with(func(o *keyOutcome) {
			o.exposure = 0.9
		})},
		{"q and e together lower exposure", []keyEvent{press(glfw.KeyQ), press(glfw.KeyE, glfw.KeyQ)}, with(func(o *keyOutcome) {
			o.exposure = 0.8
		})},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := libstate.NewState()
			var result keyResult
			for _, ev := range test.events {
				held := map[glfw.Key]bool{}
				for _, k := range ev.held {
					held[k] = true
				}
				r := dispatchKey(state, ev.key, ev.action, func(k glfw.Key) bool { return held[k] })
				result.UIToggled = result.UIToggled || r.UIToggled
				result.DumpRequested = result.DumpRequested || r.DumpRequested
			}

			want := test.want
			assert.Equal(t, want.ui, state.UIEnabled, "ui")
			assert.Equal(t, want.mouseLook, state.MouseLookEnabled, "mouse look")
			assert.Equal(t, want.spotlight, state.SpotlightEnabled, "spotlight")
			assert.Equal(t, want.bloom, state.BloomEnabled, "bloom")
			assert.InDelta(t, want.exposure, state.Exposure, 1e-5, "exposure")
			assert.Equal(t, want.uiToggled, result.UIToggled, "ui toggled")
			assert.Equal(t, want.dump, result.DumpRequested, "dump")
		})
	}
}
