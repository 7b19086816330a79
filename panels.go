package main

import (
	"fmt"

	"bloom-viewer/libstate"

	"github.com/inkyblackness/imgui-go/v4"
)

const (
	attenuationSpeed = 0.005
	attenuationMin   = 0.0001
	attenuationMax   = 1.0
)

func (app *App) drawPanels() {
	state := app.State

	imgui.Begin("Settings")
	imgui.ColorEdit3("Clear color", (*[3]float32)(&state.ClearColor))

	imgui.Text("Point light settings:")
	imgui.DragFloatV("pointLight.constant", &state.PointLight.Constant, attenuationSpeed, attenuationMin, attenuationMax, "%.4f", imgui.SliderFlagsNone)
	imgui.DragFloatV("pointLight.linear", &state.PointLight.Linear, attenuationSpeed, attenuationMin, attenuationMax, "%.4f", imgui.SliderFlagsNone)
	imgui.DragFloatV("pointLight.quadratic", &state.PointLight.Quadratic, attenuationSpeed, attenuationMin, attenuationMax, "%.4f", imgui.SliderFlagsNone)

	imgui.Separator()
	imgui.Text("Directional light:")
	imgui.DragFloat3V("Direction", (*[3]float32)(&state.DirLight.Direction), 0.01, -1, 1, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloat3V("Ambient / Diffuse / Specular", (*[3]float32)(&state.DirLight.Intensity), 0.005, 0, 1, "%.3f", imgui.SliderFlagsNone)

	imgui.Separator()
	imgui.Checkbox("Spotlight", &state.SpotlightEnabled)
	imgui.Checkbox("Bloom", &state.BloomEnabled)
	imgui.Checkbox("Wireframe", &app.Wireframe)
	if imgui.DragFloatV("Exposure", &state.Exposure, libstate.ExposureStep, 0, 100, "%.2f", imgui.SliderFlagsNone) && state.Exposure < 0 {
		state.Exposure = 0
	}
	imgui.Text(fmt.Sprintf("Blur passes: %d", app.bloom.Iterations))
	imgui.End()

	cam := state.Camera
	imgui.Begin("Camera info")
	imgui.Text(fmt.Sprintf("Camera position: (%f, %f, %f)", cam.Position.X(), cam.Position.Y(), cam.Position.Z()))
	imgui.Text(fmt.Sprintf("(Yaw, Pitch): (%f, %f)", cam.Yaw, cam.Pitch))
	imgui.Text(fmt.Sprintf("Camera front: (%f, %f, %f)", cam.Front.X(), cam.Front.Y(), cam.Front.Z()))
	imgui.Text(fmt.Sprintf("Zoom: %.1f", cam.Zoom))
	imgui.Checkbox("Camera mouse update", &state.MouseLookEnabled)
	imgui.End()
}
