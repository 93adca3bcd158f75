package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l.Info("hidden")
	l.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewFallsBackToEnvThenInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, log.DebugLevel, New(&bytes.Buffer{}, "").GetLevel())

	t.Setenv("LOG_LEVEL", "bogus")
	assert.Equal(t, log.InfoLevel, New(&bytes.Buffer{}, "").GetLevel())
}
