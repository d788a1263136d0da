package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelDebug, Output: &buf})

	log.Debug("matched", "key", "GET@/users")
	assert.Contains(t, buf.String(), "matched")
	assert.Contains(t, buf.String(), "GET@/users")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: FormatJSON, Output: &buf})

	log.Info("hello")
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelWarn, Output: &buf})

	log.Info("suppressed")
	assert.Empty(t, buf.String())

	log.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must write nowhere observable.
	Nop().Error("dropped")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
