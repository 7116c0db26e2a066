package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log, sentryEnabled := New(Options{Output: &buf})
	assert.False(t, sentryEnabled)

	log.Debug("hidden")
	log.Info("goal created", "goal_id", "g1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "goal created", record["msg"])
	assert.Equal(t, "g1", record["goal_id"])
}

func TestNew_DevelopmentWritesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Options{Development: true, Output: &buf})

	log.Debug("period computed", "frequency", "WEEKLY")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "frequency=WEEKLY")
}

func TestNew_InvalidSentryDSN(t *testing.T) {
	var buf bytes.Buffer
	log, sentryEnabled := New(Options{SentryDSN: "not a dsn", Output: &buf})

	assert.False(t, sentryEnabled)
	assert.Contains(t, buf.String(), "sentry disabled")

	log.Error("still logs")
	assert.Contains(t, buf.String(), "still logs")
}
