package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		mode, level string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"dev", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"prod", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"production", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.mode+"/"+tt.level, func(t *testing.T) {
			logger, err := New(tt.mode, tt.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.disabled))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("dev", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")
}
