package libscn

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

const (
	ShaderLit         = "lit"
	ShaderTransparent = "transparent"
)

type Rotation struct {
	Axis    string  `json:"axis"`
	Degrees float32 `json:"degrees"`
}

type Spin struct {
	Axis             string  `json:"axis"`
	DegreesPerSecond float32 `json:"degreesPerSecond"`
}

type ObjectDesc struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Shader string `json:"shader"`

	// Marker is the index of the point light this object follows, nil for static objects.
	Marker *int `json:"marker,omitempty"`

	Translate mgl32.Vec3 `json:"translate"`
	Scale     float32    `json:"scale"`
	Rotate    []Rotation `json:"rotate,omitempty"`
	Spin      []Spin     `json:"spin,omitempty"`
}

type SkyboxDesc struct {
	Right  string `json:"right"`
	Left   string `json:"left"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

// Faces lists the face images in cubemap layer order +X, -X, +Y, -Y, +Z, -Z.
func (sky SkyboxDesc) Faces() []string {
	return []string{sky.Right, sky.Left, sky.Top, sky.Bottom, sky.Front, sky.Back}
}

type SceneDesc struct {
	Skybox  SkyboxDesc   `json:"skybox"`
	Objects []ObjectDesc `json:"objects"`
}

var axes = map[string]mgl32.Vec3{
	"x": {1, 0, 0},
	"y": {0, 1, 0},
	"z": {0, 0, 1},
}

func LoadSceneFile(filename string) (*SceneDesc, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open scene file %q: %w", filename, err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("could not load scene file %q: %w", filename, err)
	}
	return scene, nil
}

func ParseScene(r io.Reader) (*SceneDesc, error) {
	scene := &SceneDesc{}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(scene); err != nil {
		return nil, fmt.Errorf("could not unmarshal scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Validate normalizes defaults and rejects descriptors the renderer cannot draw.
func (scene *SceneDesc) Validate() error {
	var names []string
	for i := range scene.Objects {
		obj := &scene.Objects[i]
		if obj.Name == "" {
			return fmt.Errorf("object %d has no name", i)
		}
		if slices.Contains(names, obj.Name) {
			return fmt.Errorf("duplicate object name %q", obj.Name)
		}
		names = append(names, obj.Name)

		if obj.Model == "" {
			return fmt.Errorf("object %q has no model", obj.Name)
		}
		if obj.Shader == "" {
			obj.Shader = ShaderLit
		}
		if obj.Shader != ShaderLit && obj.Shader != ShaderTransparent {
			return fmt.Errorf("object %q has unknown shader %q", obj.Name, obj.Shader)
		}
		if obj.Scale == 0 {
			obj.Scale = 1
		}
		if obj.Marker != nil && (*obj.Marker < 0 || *obj.Marker > 1) {
			return fmt.Errorf("object %q follows unknown point light %d", obj.Name, *obj.Marker)
		}
		for j := range obj.Rotate {
			obj.Rotate[j].Axis = strings.ToLower(obj.Rotate[j].Axis)
			if _, ok := axes[obj.Rotate[j].Axis]; !ok {
				return fmt.Errorf("object %q has unknown rotation axis %q", obj.Name, obj.Rotate[j].Axis)
			}
		}
		for j := range obj.Spin {
			obj.Spin[j].Axis = strings.ToLower(obj.Spin[j].Axis)
			if _, ok := axes[obj.Spin[j].Axis]; !ok {
				return fmt.Errorf("object %q has unknown spin axis %q", obj.Name, obj.Spin[j].Axis)
			}
		}
	}
	return nil
}

// Partition splits the objects into the opaque and the transparent draw list, keeping descriptor order.
func (scene *SceneDesc) Partition() (opaque, transparent []ObjectDesc) {
	firstTransparent := slices.IndexFunc(scene.Objects, func(o ObjectDesc) bool { return o.Shader == ShaderTransparent })
	if firstTransparent < 0 {
		return scene.Objects, nil
	}
	for _, obj := range scene.Objects {
		if obj.Shader == ShaderTransparent {
			transparent = append(transparent, obj)
		} else {
			opaque = append(opaque, obj)
		}
	}
	return
}

// Transform builds the model matrix at time t: translate, uniform scale, the fixed
// rotations in order, then the spins. Markers are placed at the given light position.
func (obj *ObjectDesc) Transform(t float32, lights [2]mgl32.Vec3) mgl32.Mat4 {
	position := obj.Translate
	if obj.Marker != nil {
		position = lights[*obj.Marker]
	}
	m := mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.Scale3D(obj.Scale, obj.Scale, obj.Scale))
	for _, r := range obj.Rotate {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(r.Degrees), axes[r.Axis]))
	}
	for _, s := range obj.Spin {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(t*s.DegreesPerSecond), axes[s.Axis]))
	}
	return m
}
