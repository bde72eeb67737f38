package logger

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{"info stays bare", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn gets source", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error gets source", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info opted in", slog.LevelInfo, []slog.Level{slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), tt.levels...)

			slog.New(h).Log(context.Background(), tt.level, "hello")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelError)

	slog.New(h).With("user_id", 7).WithGroup("req").Info("hello", "path", "/api/v1/departments")

	out := buf.String()
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "req.path=/api/v1/departments")
	assert.NotContains(t, out, "source=")
}

func TestConditionalSourceHandler_Enabled(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewConditionalSourceHandler(base, slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	err := Init(&config.LoggerConfig{Level: "debug", Format: "json", OutputPath: path}, false)
	require.NoError(t, err)

	NewLogger().Named("test").Infow("written", "key", "value")
	assert.NotNil(t, Get())
}
