package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Michaelnacaya1234/Accounting-services/internal/config"
	"github.com/Michaelnacaya1234/Accounting-services/internal/reqctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithCtxAddsRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	ctx := reqctx.WithRequestID(context.Background(), "rid-1")
	ctx = reqctx.WithUserID(ctx, 42)
	WithCtx(ctx).Info("hello")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, int64(42), fields["user_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestInitLoggerWritesToConfiguredDir(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	dir := filepath.Join(t.TempDir(), "logs")
	InitLogger(&config.Config{LogDir: dir, LogLevel: "info", Env: "test"})
	Log.Info("started")
	_ = Log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"env":"test"`)
	assert.Contains(t, string(data), `"message":"started"`)
}
