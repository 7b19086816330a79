package libstate

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	Shininess = 32.0
	NearPlane = 0.1
	FarPlane  = 100.0

	SpotConstant  = 1.0
	SpotLinear    = 0.09
	SpotQuadratic = 0.032
)

var (
	SpotCutOff      = math32.Cos(mgl32.DegToRad(12.5))
	SpotOuterCutOff = math32.Cos(mgl32.DegToRad(15))
)

type UniformSetter interface {
	SetUniform(name string, value any)
}

// Frame carries the per frame inputs of the lighting uniforms.
type Frame struct {
	// Time is the elapsed time in seconds.
	Time   float32
	Aspect float32
}

func (s *State) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(s.Camera.Zoom), aspect, NearPlane, FarPlane)
}

// PointLightPositions returns the animated positions of both point lights at time t.
func PointLightPositions(t float32) [2]mgl32.Vec3 {
	sin := math32.Sin(t)
	return [2]mgl32.Vec3{
		{-1.75, sin*0.3 + 0.6, 0.9},
		{4.35, sin*0.2 + 0.6, 1.1},
	}
}

func broadcast(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}

// ApplyLighting sets the camera, material and light uniforms of a lit shader.
// A disabled spotlight keeps its place in the shader with zero diffuse and specular.
func (s *State) ApplyLighting(u UniformSetter, frame Frame) {
	cam := s.Camera
	u.SetUniform("projection", s.Projection(frame.Aspect))
	u.SetUniform("view", cam.ViewMatrix())
	u.SetUniform("viewPosition", cam.Position)
	u.SetUniform("material.shininess", float32(Shininess))

	u.SetUniform("dirLight.direction", s.DirLight.Direction)
	u.SetUniform("dirLight.ambient", broadcast(s.DirLight.Intensity.X()))
	u.SetUniform("dirLight.diffuse", broadcast(s.DirLight.Intensity.Y()))
	u.SetUniform("dirLight.specular", broadcast(s.DirLight.Intensity.Z()))

	for i, pos := range PointLightPositions(frame.Time) {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetUniform(prefix+"position", pos)
		u.SetUniform(prefix+"ambient", s.PointLight.Ambient)
		u.SetUniform(prefix+"diffuse", s.PointLight.Diffuse)
		u.SetUniform(prefix+"specular", s.PointLight.Specular)
		u.SetUniform(prefix+"constant", s.PointLight.Constant)
		u.SetUniform(prefix+"linear", s.PointLight.Linear)
		u.SetUniform(prefix+"quadratic", s.PointLight.Quadratic)
	}

	if !s.SpotlightEnabled {
		u.SetUniform("spotLight.diffuse", mgl32.Vec3{})
		u.SetUniform("spotLight.specular", mgl32.Vec3{})
		return
	}
	u.SetUniform("spotLight.position", cam.Position)
	u.SetUniform("spotLight.direction", cam.Front)
	u.SetUniform("spotLight.ambient", mgl32.Vec3{})
	u.SetUniform("spotLight.diffuse", mgl32.Vec3{1, 1, 1})
	u.SetUniform("spotLight.specular", mgl32.Vec3{1, 1, 1})
	u.SetUniform("spotLight.constant", float32(SpotConstant))
	u.SetUniform("spotLight.linear", float32(SpotLinear))
	u.SetUniform("spotLight.quadratic", float32(SpotQuadratic))
	u.SetUniform("spotLight.cutOff", SpotCutOff)
	u.SetUniform("spotLight.outerCutOff", SpotOuterCutOff)
}
