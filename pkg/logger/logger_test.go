package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: WarnLevel, Output: &buf})

	log.Debug("hidden")
	log.Info("also hidden")
	log.Warn("shown", "reason", "disk")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "disk")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: InfoLevel, Output: &buf})

	log.WithFields(map[string]interface{}{"request_id": "abc123"}).Info("handled")

	assert.Contains(t, buf.String(), "abc123")
}
