package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Console: &buf})

	ForComponent(logger, "buyer").Printf("request %s", "/reportWin")

	assert.Contains(t, buf.String(), "request /reportWin")
	assert.Contains(t, buf.String(), "buyer")
}

func TestDebugLevelIsFilteredUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	AsFrameworkLogger(NewLogger(Options{Console: &buf}), zerolog.DebugLevel).Printf("hidden")
	assert.Empty(t, buf.String())

	AsFrameworkLogger(NewLogger(Options{Console: &buf, Debug: true}), zerolog.DebugLevel).Printf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogFileReceivesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockserver.log")
	var buf bytes.Buffer
	logger := NewLogger(Options{Console: &buf, LogFile: path, MaxSizeMB: 1})

	AsFrameworkLogger(logger, zerolog.InfoLevel).Printf("server %s stopped", "https://localhost:8081")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"server https://localhost:8081 stopped"`)
	assert.Contains(t, buf.String(), "server https://localhost:8081 stopped")
}
