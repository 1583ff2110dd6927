package logger

import (
	"testing"

	"go-inventory-pos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "loud", Encoding: "json"}, false)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewDevelopmentIsDebug(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "error"}, true)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}
