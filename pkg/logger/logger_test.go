package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("booking %s created", "b1")
	log.Warn("worker %s is busy", "w1")

	out := buf.String()
	assert.NotContains(t, out, "b1")
	assert.Contains(t, out, "worker w1 is busy")
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Debug("slots computed: %d", 12)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slots computed: 12")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored %v", 1)
	assert.NoError(t, log.Close())
}
