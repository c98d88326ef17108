package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesLogfmtToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "minitodo.log")

	logger, closer, err := New(path, "info")
	require.NoError(t, err)

	logger.Info("loaded todos", "count", 3)
	logger.Debug("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "level=info")
	assert.Contains(t, content, `msg="loaded todos"`)
	assert.Contains(t, content, "count=3")
	assert.NotContains(t, content, "hidden at info level")
}

func TestNew_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minitodo.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New(path, "debug")
		require.NoError(t, err)
		logger.Warn(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("", "")
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Error("goes nowhere")
	assert.NoError(t, closer.Close())
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}
