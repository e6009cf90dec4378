package debug

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogDisabledByDefault(t *testing.T) {
	SetOutput(io.Discard)
	assert.False(t, Enabled())

	// must not panic with the no-op logger
	Log("nothing %d", 1)
}

func TestSetOutputWritesEntries(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	assert.True(t, Enabled())

	Log("selected %.2f, %.2f", 21.66, -158.05)
	Warn("mock forecast", zap.String("reason", "no api key"))
	Sync()

	out := buf.String()
	assert.Contains(t, out, "selected 21.66, -158.05")
	assert.Contains(t, out, "mock forecast")
	assert.Contains(t, out, "no api key")
}
