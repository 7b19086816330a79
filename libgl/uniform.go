package libgl

import (
	"fmt"
	"reflect"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// setProgramUniformAny uploads value, dereferencing pointers first. Booleans are sent as int.
func setProgramUniformAny(prog uint32, location int32, value any) {
	if v := reflect.ValueOf(value); v.Kind() == reflect.Pointer && !v.IsNil() {
		setProgramUniformAny(prog, location, v.Elem().Interface())
		return
	}

	switch v := value.(type) {
	case bool:
		gl.ProgramUniform1i(prog, location, boolToInt(v))
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case float64:
		gl.ProgramUniform1f(prog, location, float32(v))
	case mgl32.Vec2:
		gl.ProgramUniform2fv(prog, location, 1, &v[0])
	case mgl32.Vec3:
		gl.ProgramUniform3fv(prog, location, 1, &v[0])
	case mgl32.Vec4:
		gl.ProgramUniform4fv(prog, location, 1, &v[0])
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		liblog.Log.Panic(fmt.Sprintf("unsupported uniform type %T", value))
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
