package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with JSON format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "info", Format: "json"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		logger, err := NewLogger(&config.LogConfig{Level: "debug", Format: "console"})

		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates stderr logger", func(t *testing.T) {
		logger := NewStderrLogger(&config.LogConfig{Level: "warn", Format: "console"})

		assert.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"invalid", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.name))
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	t.Run("json entries carry service and message", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))

		log.Info("model loaded")
		require.NoError(t, log.Sync())

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "model loaded", entry["message"])
		assert.Equal(t, ServiceName, entry["service"])
		assert.Equal(t, "info", entry["level"])
	})

	t.Run("entries below the configured level are dropped", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&config.LogConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))

		log.Info("ignored")
		log.Debug("ignored too")

		assert.Empty(t, buf.String())
	})
}
