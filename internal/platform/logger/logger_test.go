package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunflower/pkg/platform/sentinel"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn", "json")
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "zone", 9)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, float64(9), line["zone"])
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "DEBUG", "text")
	require.NoError(t, err)

	log.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewWithWriterRejectsBadInput(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "loud", "json")
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)

	_, err = NewWithWriter(&bytes.Buffer{}, "info", "xml")
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}
