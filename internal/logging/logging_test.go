package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adcraft.log")
	logger, err := NewFileLogger(path, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("login rejected")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "login rejected")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewServerLogger_BadLevel(t *testing.T) {
	_, err := NewServerLogger("loud")
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")
}
