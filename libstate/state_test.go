package libstate

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTenFields(t *testing.T) {
	s := NewState()
	n := s.Load(strings.NewReader("0.1 0.2 0.3 1 1.0 2.0 3.0 0.0 0.0 -1.0"))

	assert.Equal(t, PersistedFields, n)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, s.ClearColor)
	assert.True(t, s.UIEnabled)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.Camera.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, s.Camera.Front)
}

func TestLoadNewlineSeparated(t *testing.T) {
	s := NewState()
	n := s.Load(strings.NewReader("0.5\n0.5\n0.5\n0\n0\n1\n0\n1\n0\n0\n"))
	assert.Equal(t, PersistedFields, n)
	assert.False(t, s.UIEnabled)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.Camera.Front)
	assert.InDelta(t, 0, s.Camera.Yaw, 1e-4)
}

func TestLoadShortFileKeepsDefaults(t *testing.T) {
	s := NewState()
	n := s.Load(strings.NewReader("0.1 0.2 0.3 1 5"))

	assert.Equal(t, 5, n)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, s.ClearColor)
	assert.True(t, s.UIEnabled)
	assert.Equal(t, mgl32.Vec3{5, 0, 3}, s.Camera.Position)
	assert.Equal(t, NewState().Camera.Front, s.Camera.Front)
}

func TestLoadStopsAtMalformedField(t *testing.T) {
	s := NewState()
	n := s.Load(strings.NewReader("0.1 0.2 0.3 yes 1 2 3 0 0 -1"))

	assert.Equal(t, 3, n)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, s.ClearColor)
	assert.False(t, s.UIEnabled)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, s.Camera.Position)
}

func TestLoadEmpty(t *testing.T) {
	s := NewState()
	assert.Equal(t, 0, s.Load(strings.NewReader("")))
	assert.Equal(t, NewState().ClearColor, s.ClearColor)
	assert.True(t, s.MouseLookEnabled)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewState()
	s.ClearColor = mgl32.Vec3{0.1, 0.25, 1.0 / 3}
	s.UIEnabled = true
	s.Camera.Position = mgl32.Vec3{-1.75, 0.123456789, 42}
	s.Camera.ProcessMouseMovement(123, -45, true)
	s.PointLight.Constant = 0.9

	buf := &bytes.Buffer{}
	require.NoError(t, s.Save(buf))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), PersistedFields)

	loaded := NewState()
	assert.Equal(t, PersistedFields, loaded.Load(buf))
	assert.Equal(t, s.ClearColor, loaded.ClearColor)
	assert.Equal(t, s.UIEnabled, loaded.UIEnabled)
	assert.Equal(t, s.Camera.Position, loaded.Camera.Position)
	assert.Equal(t, s.Camera.Front, loaded.Camera.Front)
	assert.InDelta(t, s.Camera.Yaw, loaded.Camera.Yaw, 1e-3)
	assert.InDelta(t, s.Camera.Pitch, loaded.Camera.Pitch, 1e-3)
	// not persisted
	assert.Equal(t, float32(0.3), loaded.PointLight.Constant)
}

func TestSaveFormat(t *testing.T) {
	s := NewState()
	buf := &bytes.Buffer{}
	require.NoError(t, s.Save(buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, PersistedFields)
	assert.Equal(t, []string{"0", "0", "0", "0", "0", "0", "3"}, lines[:7])
	for _, line := range lines[7:] {
		_, err := strconv.ParseFloat(line, 32)
		assert.NoError(t, err)
	}
	z, err := strconv.ParseFloat(lines[9], 32)
	require.NoError(t, err)
	assert.InDelta(t, -1, z, 1e-6)
}

func TestLoadFileMissing(t *testing.T) {
	s := NewState()
	assert.NoError(t, s.LoadFile(filepath.Join(t.TempDir(), "missing.txt")))
	assert.Equal(t, NewState().Camera.Position, s.Camera.Position)
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	s := NewState()
	s.ClearColor = mgl32.Vec3{0.2, 0.4, 0.6}
	require.NoError(t, s.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "0.2\n0.4\n0.6\n"))

	loaded := NewState()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, s.ClearColor, loaded.ClearColor)
}

func TestLoadedUIDisablesMouseLook(t *testing.T) {
	s := NewState()
	s.Load(strings.NewReader("0 0 0 1"))
	assert.True(t, s.UIEnabled)
	assert.False(t, s.MouseLookEnabled)
}
