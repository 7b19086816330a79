package libscn

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `{
	"skybox": {"right": "r.jpg", "left": "l.jpg", "top": "t.jpg", "bottom": "b.jpg", "front": "f.jpg", "back": "k.jpg"},
	"objects": [
		{"name": "bust", "model": "bust.obj", "translate": [0.5, -0.7, 2.15], "scale": 1.1,
		 "rotate": [{"axis": "X", "degrees": -90}, {"axis": "z", "degrees": 60}]},
		{"name": "orb", "model": "ball.obj", "shader": "transparent", "translate": [0, 1, 0]},
		{"name": "marker", "model": "ball.obj", "marker": 1, "scale": 0.05,
		 "spin": [{"axis": "y", "degreesPerSecond": 90}]}
	]
}`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene(strings.NewReader(testScene))
	require.NoError(t, err)

	assert.Equal(t, []string{"r.jpg", "l.jpg", "t.jpg", "b.jpg", "f.jpg", "k.jpg"}, scene.Skybox.Faces())
	require.Len(t, scene.Objects, 3)
	assert.Equal(t, ShaderLit, scene.Objects[0].Shader)
	assert.Equal(t, "x", scene.Objects[0].Rotate[0].Axis)
	assert.Equal(t, float32(1), scene.Objects[1].Scale)
	require.NotNil(t, scene.Objects[2].Marker)
	assert.Equal(t, 1, *scene.Objects[2].Marker)

	opaque, transparent := scene.Partition()
	require.Len(t, opaque, 2)
	require.Len(t, transparent, 1)
	assert.Equal(t, "bust", opaque[0].Name)
	assert.Equal(t, "marker", opaque[1].Name)
	assert.Equal(t, "orb", transparent[0].Name)
}

func TestParseSceneInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        `{"objects": [`,
		"unknown field": `{"objects": [{"name": "a", "model": "a.obj", "colour": 1}]}`,
		"no name":       `{"objects": [{"model": "a.obj"}]}`,
		"no model":      `{"objects": [{"name": "a"}]}`,
		"duplicate":     `{"objects": [{"name": "a", "model": "a.obj"}, {"name": "a", "model": "b.obj"}]}`,
		"shader":        `{"objects": [{"name": "a", "model": "a.obj", "shader": "toon"}]}`,
		"marker":        `{"objects": [{"name": "a", "model": "a.obj", "marker": 2}]}`,
		"axis":          `{"objects": [{"name": "a", "model": "a.obj", "rotate": [{"axis": "w", "degrees": 1}]}]}`,
		"spin axis":     `{"objects": [{"name": "a", "model": "a.obj", "spin": [{"axis": "q"}]}]}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestPartitionWithoutTransparent(t *testing.T) {
	scene := &SceneDesc{Objects: []ObjectDesc{{Name: "a", Shader: ShaderLit}}}
	opaque, transparent := scene.Partition()
	assert.Len(t, opaque, 1)
	assert.Empty(t, transparent)
}

func assertMat4InDelta(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], 1e-5)
}

func TestObjectTransformStatic(t *testing.T) {
	obj := ObjectDesc{
		Translate: mgl32.Vec3{4.5, -0.45, 1.15},
		Scale:     0.25,
		Rotate:    []Rotation{{Axis: "y", Degrees: -105}},
	}
	expected := mgl32.Translate3D(4.5, -0.45, 1.15).
		Mul4(mgl32.Scale3D(0.25, 0.25, 0.25)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-105)))
	assertMat4InDelta(t, expected, obj.Transform(10, [2]mgl32.Vec3{}))
}

func TestObjectTransformRotationOrder(t *testing.T) {
	obj := ObjectDesc{
		Scale:  1,
		Rotate: []Rotation{{Axis: "x", Degrees: -90}, {Axis: "z", Degrees: 60}},
	}
	expected := mgl32.HomogRotate3DX(mgl32.DegToRad(-90)).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(60)))
	assertMat4InDelta(t, expected, obj.Transform(0, [2]mgl32.Vec3{}))
}

func TestObjectTransformMarker(t *testing.T) {
	marker := 1
	obj := ObjectDesc{
		Marker:    &marker,
		Translate: mgl32.Vec3{100, 100, 100},
		Scale:     0.05,
		Spin:      []Spin{{Axis: "x", DegreesPerSecond: 60}},
	}
	lights := [2]mgl32.Vec3{{-1.75, 0.6, 0.9}, {4.35, 0.6, 1.1}}

	m := obj.Transform(1.5, lights)
	position := m.Col(3).Vec3()
	assert.InDeltaSlice(t, []float32{4.35, 0.6, 1.1}, position[:], 1e-6)

	expected := mgl32.Translate3D(4.35, 0.6, 1.1).
		Mul4(mgl32.Scale3D(0.05, 0.05, 0.05)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90)))
	assertMat4InDelta(t, expected, m)
}
