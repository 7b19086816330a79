package liblog_test

import (
	"bloom-viewer/liblog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLevel(t *testing.T) {
	prev := liblog.Log
	defer func() { liblog.Log = prev }()

	require.NoError(t, liblog.Init("warn", false))
	assert.False(t, liblog.Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, liblog.Log.Core().Enabled(zapcore.ErrorLevel))
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	prev := liblog.Log
	defer func() { liblog.Log = prev }()

	assert.Error(t, liblog.Init("loud", true))
	assert.Same(t, prev, liblog.Log)
}
