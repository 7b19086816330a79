package libgl

import (
	"strings"
	"unsafe"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// PushDebugGroup opens a named group in the GL debug output and returns the matching pop.
//
//	defer libgl.PushDebugGroup("Draw Skybox")()
func PushDebugGroup(name string) func() {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 999, -1, gl.Str(name+"\x00"))
	return gl.PopDebugGroup
}

// Messages that are pure noise on common drivers.
var mutedApiOther = []uint32{131185}
var mutedApiUndefined = []uint32{131222}

// EnableDebugOutput routes GL debug messages into liblog.
// High severity messages panic with the debug group stack attached.
func EnableDebugOutput() {
	var groupStack []string

	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			if gltype == gl.DEBUG_TYPE_PUSH_GROUP {
				groupStack = append(groupStack, message)
				return
			} else if gltype == gl.DEBUG_TYPE_POP_GROUP {
				if len(groupStack) > 0 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}

			fields := []zap.Field{
				zap.String("type", debugTypeName(gltype)),
				zap.String("source", debugSourceName(source)),
				zap.Uint32("id", id),
			}
			if len(groupStack) > 0 {
				fields = append(fields, zap.String("group", strings.Join(groupStack, " > ")))
			}

			level := debugSeverityLevel(severity)
			if level == zapcore.PanicLevel {
				liblog.Log.Panic(message, fields...)
			}
			if ce := liblog.Log.Check(level, message); ce != nil {
				ce.Write(fields...)
			}
		}, nil)

	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(mutedApiOther)), &mutedApiOther[0], false)
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR, gl.DONT_CARE, int32(len(mutedApiUndefined)), &mutedApiUndefined[0], false)
}

func debugSeverityLevel(severity uint32) zapcore.Level {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return zapcore.PanicLevel
	case gl.DEBUG_SEVERITY_MEDIUM:
		return zapcore.WarnLevel
	case gl.DEBUG_SEVERITY_LOW:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func debugTypeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "PERFORMANCE"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "PORTABILITY"
	case gl.DEBUG_TYPE_MARKER:
		return "MARKER"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "PUSH_GROUP"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "POP_GROUP"
	}
	return "OTHER"
}

func debugSourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GRAPHICS_LIBRARY"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "SHADER_COMPILER"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "APPLICATION"
	}
	return "OTHER"
}
