package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(Options{Level: "debug", Format: FormatJSON, Out: &buf}), "listing")

	l.Warn().Str("sort_key", "stars").Msg("unknown sort key")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "listing", entry["component"])
	assert.Equal(t, "stars", entry["sort_key"])
	assert.Equal(t, "unknown sort key", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(Options{Level: tt.level, Format: FormatJSON, Out: &bytes.Buffer{}})
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "error", Format: FormatJSON, Out: &buf})

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
}
