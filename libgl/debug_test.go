package libgl

import (
	"testing"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestDebugSeverityLevel(t *testing.T) {
	assert.Equal(t, zapcore.PanicLevel, debugSeverityLevel(gl.DEBUG_SEVERITY_HIGH))
	assert.Equal(t, zapcore.WarnLevel, debugSeverityLevel(gl.DEBUG_SEVERITY_MEDIUM))
	assert.Equal(t, zapcore.InfoLevel, debugSeverityLevel(gl.DEBUG_SEVERITY_LOW))
	assert.Equal(t, zapcore.DebugLevel, debugSeverityLevel(gl.DEBUG_SEVERITY_NOTIFICATION))
}

func TestDebugNames(t *testing.T) {
	assert.Equal(t, "PERFORMANCE", debugTypeName(gl.DEBUG_TYPE_PERFORMANCE))
	assert.Equal(t, "OTHER", debugTypeName(0))
	assert.Equal(t, "SHADER_COMPILER", debugSourceName(gl.DEBUG_SOURCE_SHADER_COMPILER))
	assert.Equal(t, "OTHER", debugSourceName(0))
}

func TestClassifyVendor(t *testing.T) {
	assert.Equal(t, VendorIntel, classifyVendor("Intel\x00"))
	assert.Equal(t, VendorNvidia, classifyVendor("NVIDIA Corporation"))
	assert.Equal(t, VendorAmd, classifyVendor("ATI Technologies Inc."))
	assert.Equal(t, VendorUnknown, classifyVendor("Mesa"))
}
