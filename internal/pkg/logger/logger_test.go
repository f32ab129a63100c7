package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(DebugLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigureWritesJSONAndFile(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "app.log")
	Configure(Config{Level: InfoLevel, Output: &buf, File: FileConfig{Path: logFile}})

	Info().Str("lesson", "sleep-and-memory").Msg("rendered")
	Debug().Msg("hidden at info level")

	assert.Contains(t, buf.String(), `"lesson":"sleep-and-memory"`)
	assert.NotContains(t, buf.String(), "hidden at info level")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"rendered"`)
}
