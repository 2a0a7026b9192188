package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

func initJSON(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	cfg.Output = "json"
	require.NoError(t, Init(cfg))
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		_ = Init(Config{})
	})
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLevelNames(t *testing.T) {
	buf := initJSON(t, Config{})
	Log(LevelCritical, "critical")
	Log(LevelCritical+1, "critical plus one")
	Log(LevelPanic, "panic")
	Log(LevelFatal+2, "fatal plus two")
	Warn("warn")

	got := lines(t, buf)
	require.Len(t, got, 5)
	assert.Equal(t, "CRITICAL", got[0][LevelKey])
	assert.Equal(t, "CRITICAL+1", got[1][LevelKey])
	assert.Equal(t, "PANIC", got[2][LevelKey])
	assert.Equal(t, "FATAL+2", got[3][LevelKey])
	assert.Equal(t, "WARN", got[4][LevelKey])
}

func TestInitLevel(t *testing.T) {
	t.Run("info_by_default", func(t *testing.T) {
		buf := initJSON(t, Config{})
		Debug("hidden")
		Info("shown")
		got := lines(t, buf)
		require.Len(t, got, 1)
		assert.Equal(t, "shown", got[0]["msg"])
	})
	t.Run("level_override", func(t *testing.T) {
		buf := initJSON(t, Config{Debug: true, Level: "warn"})
		Info("hidden")
		Warn("shown")
		assert.Len(t, lines(t, buf), 1)
	})
	t.Run("invalid", func(t *testing.T) {
		assert.Error(t, Init(Config{Level: "loud"}))
		assert.ErrorIs(t, Init(Config{Output: "xml"}), errUnsupportedOutput)
		require.NoError(t, Init(Config{}))
	})
}

func TestJSONAttrs(t *testing.T) {
	buf := initJSON(t, Config{})
	Info("attrs", slog.Duration("latency", 1500*time.Millisecond), slogx.Error(errors.New("boom")), slogx.Error(nil))

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.EqualValues(t, 1500, got[0]["latency"])
	assert.Equal(t, "boom", got[0][ErrorKey])
	assert.NotContains(t, got[0], ErrorVerboseKey)
}

func TestDebugErrorStackTrace(t *testing.T) {
	buf := initJSON(t, Config{Debug: true})
	Error("failed", slogx.Error(errors.Wrap(errors.New("root cause"), "wrapped")))

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "wrapped: root cause", got[0][ErrorKey])
	assert.Contains(t, got[0][ErrorVerboseKey], "root cause")
	frames, ok := got[0][ErrorStackTraceKey].([]any)
	require.True(t, ok)
	require.NotEmpty(t, frames)
	assert.Contains(t, frames[0], "TestDebugErrorStackTrace")
}

func TestContextLogger(t *testing.T) {
	buf := initJSON(t, Config{})
	ctx := WithContext(context.Background(), slogx.Wallet("0xA11CE"))
	InfoContext(ctx, "with wallet")
	InfoContext(nil, "without context") //nolint:staticcheck

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "0xA11CE", got[0]["wallet"])
	assert.NotContains(t, got[1], "wallet")
}
