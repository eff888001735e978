package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/BruksfildServices01/coach-platform/internal/config"
)

func TestNewWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log := New(&config.Config{Env: "production", LogLevel: "info", LogFile: path})
	log.Info("upload swept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "upload swept")
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	log := New(&config.Config{Env: "development", LogLevel: "verbose"})

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
