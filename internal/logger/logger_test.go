package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New("info", FormatConsole)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "debug", FormatJSON)

	log.Info().Str("format", "csv").Msg("parsed statement")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed statement", entry["message"])
	assert.Equal(t, "csv", entry["format"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info", FormatConsole)

	log.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tt.level, FormatJSON)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn", FormatJSON)

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, "info", FormatJSON))

	retrieved := FromContext(ctx)
	retrieved.Info().Msg("test")

	assert.NotZero(t, buf.Len())
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}
