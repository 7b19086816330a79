package main

import (
	_ "embed"
)

//go:embed assets/shaders/lit.vert
var Res_LitVshSrc string

//go:embed assets/shaders/lit.frag
var Res_LitFshSrc string

//go:embed assets/shaders/skybox.vert
var Res_SkyboxVshSrc string

//go:embed assets/shaders/skybox.frag
var Res_SkyboxFshSrc string

//go:embed assets/shaders/quad.vert
var Res_QuadVshSrc string

//go:embed assets/shaders/blur.frag
var Res_BlurFshSrc string

//go:embed assets/shaders/bloom_final.frag
var Res_BloomFinalFshSrc string

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

//go:embed assets/scene.json
var Res_DefaultScene []byte
