package libstate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"bloom-viewer/liblog"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// PersistedFields is the number of values in a scene state file.
const PersistedFields = 10

type DirectionalLight struct {
	Direction mgl32.Vec3
	// Intensity holds the ambient, diffuse and specular strength in x, y and z.
	Intensity mgl32.Vec3
}

type PointLight struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

type State struct {
	Camera     *Camera
	DirLight   DirectionalLight
	PointLight PointLight
	ClearColor mgl32.Vec3

	UIEnabled        bool
	MouseLookEnabled bool
	SpotlightEnabled bool
	BloomEnabled     bool
	Exposure         float32

	bloomKeyDown bool
}

func NewState() *State {
	return &State{
		Camera: NewCamera(mgl32.Vec3{0, 0, 3}),
		DirLight: DirectionalLight{
			Direction: mgl32.Vec3{-0.2, -1, -0.3},
			Intensity: mgl32.Vec3{0.25, 0.2, 0.1},
		},
		PointLight: PointLight{
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
			Diffuse:   mgl32.Vec3{0.6, 0.6, 0.6},
			Specular:  mgl32.Vec3{1, 1, 1},
			Constant:  0.3,
			Linear:    0.8,
			Quadratic: 0.4,
		},
		MouseLookEnabled: true,
		SpotlightEnabled: true,
		BloomEnabled:     true,
		Exposure:         1,
	}
}

// Load reads the persisted fields in order and stops at the first one that is
// missing or malformed, leaving it and all following fields unchanged.
// It returns the number of fields applied.
func (s *State) Load(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var front mgl32.Vec3
	setters := []func(string) error{
		floatField(&s.ClearColor[0]),
		floatField(&s.ClearColor[1]),
		floatField(&s.ClearColor[2]),
		boolField(&s.UIEnabled),
		floatField(&s.Camera.Position[0]),
		floatField(&s.Camera.Position[1]),
		floatField(&s.Camera.Position[2]),
		floatField(&front[0]),
		floatField(&front[1]),
		floatField(&front[2]),
	}

	n := 0
	for ; n < len(setters) && scanner.Scan(); n++ {
		if err := setters[n](scanner.Text()); err != nil {
			liblog.Log.Debug("malformed scene state field", zap.Int("field", n), zap.Error(err))
			break
		}
	}
	if n < len(setters) {
		liblog.Log.Debug("scene state is incomplete, using defaults for the rest", zap.Int("fields", n))
	}
	if n == len(setters) {
		s.Camera.SetFront(front)
	}
	if n > 3 {
		s.MouseLookEnabled = !s.UIEnabled
	}
	return n
}

func floatField(dst *float32) func(string) error {
	return func(tok string) error {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return err
		}
		*dst = float32(v)
		return nil
	}
}

func boolField(dst *bool) func(string) error {
	return func(tok string) error {
		switch tok {
		case "0":
			*dst = false
		case "1":
			*dst = true
		default:
			return fmt.Errorf("expected 0 or 1, got %q", tok)
		}
		return nil
	}
}

func (s *State) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	ui := "0"
	if s.UIEnabled {
		ui = "1"
	}
	fields := []string{
		formatFloat(s.ClearColor[0]),
		formatFloat(s.ClearColor[1]),
		formatFloat(s.ClearColor[2]),
		ui,
		formatFloat(s.Camera.Position[0]),
		formatFloat(s.Camera.Position[1]),
		formatFloat(s.Camera.Position[2]),
		formatFloat(s.Camera.Front[0]),
		formatFloat(s.Camera.Front[1]),
		formatFloat(s.Camera.Front[2]),
	}
	for _, f := range fields {
		if _, err := fmt.Fprintln(bw, f); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// LoadFile loads the state file at path. A missing file is not an error.
func (s *State) LoadFile(path string) error {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		liblog.Log.Debug("no scene state file, using defaults", zap.String("file", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not open scene state %q: %w", path, err)
	}
	defer file.Close()

	n := s.Load(file)
	liblog.Log.Debug("loaded scene state", zap.String("file", path), zap.Int("fields", n))
	return nil
}

func (s *State) SaveFile(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create scene state %q: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err = s.Save(file); err != nil {
		return fmt.Errorf("could not write scene state %q: %w", path, err)
	}
	return nil
}
