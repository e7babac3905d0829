package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetup_QuietByDefault(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := Setup(&buf, false, "")
	require.NoError(t, err)

	slog.Debug("hidden")
	slog.Info("hidden too")
	slog.Warn("shown", "step", "plan")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown step=plan")
}

func TestSetup_VerboseJSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	l, err := Setup(&buf, true, "JSON")
	require.NoError(t, err)
	l.Debug("node end", "tokens", 42)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "node end", rec["msg"])
	assert.EqualValues(t, 42, rec["tokens"])
}

func TestSetup_UnknownFormat(t *testing.T) {
	restoreDefault(t)
	_, err := Setup(&bytes.Buffer{}, false, "xml")
	assert.Error(t, err)
}
