package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyquiz/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LoggerConfig{Level: "info", Env: "production"}, &buf, time.UTC)

	log.Info("document_uploaded", zap.Int64("doc_id", 7))
	log.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "document_uploaded", entry["msg"])
	assert.Equal(t, float64(7), entry["doc_id"])
	assert.NotEmpty(t, entry["ts"])
}

func TestNewWithWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LoggerConfig{Level: "debug", Env: "production"}, &buf, nil)

	log.Debug("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LoggerConfig{Level: "info", Env: "development"}, &buf, time.UTC)

	log.Warn("plain text line")
	assert.Contains(t, buf.String(), "warn")
	assert.Contains(t, buf.String(), "plain text line")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}
