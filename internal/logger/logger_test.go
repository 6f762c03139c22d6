package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lowpoly.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false

	log := NewWithFileConfig("warn", cfg, false)
	log.Info("filtered out")
	log.Warn("mesh exhausted", zap.Int("attempts", 56000))
	_ = log.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"mesh exhausted"`)
	assert.Contains(t, lines[0], `"attempts":56000`)
	assert.Contains(t, lines[0], `"level":"WARN"`)
}

func TestNoOutputs(t *testing.T) {
	log := NewWithFileConfig("debug", FileConfig{}, false)
	assert.NotNil(t, log)
	log.Info("discarded")
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("a.log")

	assert.Equal(t, "a.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.True(t, cfg.Compress)
}
