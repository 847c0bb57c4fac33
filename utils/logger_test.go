package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warn":    WARN,
		"warning": WARN,
		"error":   ERROR,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	lvl, err := ParseLogLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, INFO, lvl)
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WARN, &buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	l.SetLevel(DEBUG)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(INFO, &buf)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("boom")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL]")
}
