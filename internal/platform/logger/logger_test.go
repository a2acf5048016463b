package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("bogus"))
	assert.Equal(t, "error", Error.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestJSONLogger_WritesFieldsAndBase(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "insights", Output: &buf})

	l.With(map[string]any{"operation": "forecast"}).Info("done", map[string]any{
		"count": 3,
		"err":   errors.New("boom"),
		"":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "insights", entry["app"])
	assert.Equal(t, "forecast", entry["operation"])
	assert.Equal(t, "done", entry["message"])
	assert.Equal(t, float64(3), entry["count"])
	assert.Equal(t, "boom", entry["err"])
	assert.NotContains(t, entry, "")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	l.Info("hidden", nil)
	l.Debug("hidden", nil)
	assert.Empty(t, buf.String())

	l.Warn("shown", map[string]any{"k": "v"})
	assert.True(t, strings.Contains(buf.String(), "shown"))
	assert.True(t, strings.Contains(buf.String(), "k=v"))
}

func TestNew_ZeroOptionsIsTextAndLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})

	l.Error("config error", map[string]any{"err": errors.New("PORT invalid")})

	out := buf.String()
	assert.Contains(t, out, "config error")
	assert.Contains(t, out, "PORT invalid")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "default format is text")
}
