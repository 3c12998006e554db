package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
}

func TestSetup_JSON(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "debug", "json"))

	LogDebug("level counted", Fields{"size": 2})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "level counted", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(2), entry["size"])
}

func TestSetup_LevelFilters(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn", "text"))

	LogInfo("hidden", nil)
	assert.Empty(t, buf.String())

	LogError(errors.New("boom"), "mining failed", Fields{"run": 3})
	assert.Contains(t, buf.String(), "mining failed")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "run=3")
}

func TestSetup_Invalid(t *testing.T) {
	resetLogger(t)
	assert.Error(t, Setup(&bytes.Buffer{}, "loud", "text"))
	assert.Error(t, Setup(&bytes.Buffer{}, "info", "xml"))
}
