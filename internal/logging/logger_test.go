package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(dir, false)
	require.NoError(t, err)

	logger.Info("submitting snippet", zap.String("submission", "abc"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `"msg":"submitting snippet"`)
	assert.Contains(t, content, `"submission":"abc"`)
	assert.False(t, strings.Contains(content, "hidden at info level"))
}

func TestVerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir, true)
	require.NoError(t, err)

	logger.Debug("debug line")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}
