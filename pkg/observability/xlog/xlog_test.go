package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	ctx := context.Background()
	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "shown", Component("processor"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=processor")
	assert.Equal(t, LevelInfo, logger.GetLevel())
}

func TestBuilderJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New().SetOutput(&buf).SetFormat(" JSON ").SetLevelString("debug").Build()
	require.NoError(t, err)

	logger.Debug(context.Background(), "open failed", Err(errors.New("denied")), File("/tmp/a.log"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "DEBUG", m["level"])
	assert.Equal(t, "denied", m[KeyError])
	assert.Equal(t, "/tmp/a.log", m[KeyFile])
}

func TestBuilderAddSource(t *testing.T) {
	tests := []struct {
		name   string
		enable bool
	}{
		{"开启", true},
		{"关闭", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, _, err := New().SetOutput(&buf).SetFormat("json").SetAddSource(tt.enable).Build()
			require.NoError(t, err)

			logger.Info(context.Background(), "located")

			var m map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
			src, ok := m[slog.SourceKey].(map[string]any)
			if !tt.enable {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, "xlog_test.go", filepath.Base(src["file"].(string)), "指向调用方而不是 xlog 内部")
		})
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"未知格式", New().SetFormat("xml")},
		{"未知级别", New().SetLevelString("verbose")},
		{"轮转文件名为空", New().SetRotation("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.b.Build()
			assert.Error(t, err)
		})
	}
}

func TestBuilderRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag", "xfilelog.log")
	logger, cleanup, err := New().SetRotation(path).Build()
	require.NoError(t, err)

	logger.Warn(context.Background(), "consumer stopped")
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "清理函数幂等")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "consumer stopped")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOnError(t *testing.T) {
	var got []error
	logger, _, err := New().SetOutput(failingWriter{}).SetOnError(func(err error) {
		got = append(got, err)
		panic("callback panic")
	}).Build()
	require.NoError(t, err)

	logger.Error(context.Background(), "x")

	require.Len(t, got, 1)
	assert.EqualError(t, got[0], "disk full")
	assert.EqualValues(t, 2, logger.(*xlogger).ErrorCount(), "写入失败与回调 panic 各计一次")
}

func TestWithAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)

	child := logger.With(slog.String("file", "a.log"))
	assert.Same(t, logger, logger.With())

	logger.SetLevel(LevelError)
	child.Warn(context.Background(), "dropped")
	assert.Empty(t, buf.String(), "派生 logger 共享级别")

	child.Error(context.Background(), "kept")
	assert.Contains(t, buf.String(), "file=a.log")
	assert.False(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestStack(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New().SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)

	logger.Stack(context.Background(), "panic recovered")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Contains(t, m[KeyStack], "goroutine")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warning", LevelWarn},
		{"Warn", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "WARN", string(text))
}

func TestDefaultAndDiscard(t *testing.T) {
	t.Cleanup(ResetDefault)

	d := Default()
	assert.Same(t, d, Default())

	SetDefault(nil)
	assert.Same(t, d, Default(), "nil 被忽略")

	discard := Discard()
	SetDefault(discard)
	assert.Same(t, discard, Default())
	assert.False(t, discard.Enabled(context.Background(), LevelError))
	discard.Error(context.Background(), "nothing")
}

func TestErrNil(t *testing.T) {
	assert.True(t, Err(nil).Equal(slog.Attr{}))
	assert.Equal(t, "count", Count(3).Key)
	assert.Equal(t, KeyDuration, Duration(0).Key)
}
