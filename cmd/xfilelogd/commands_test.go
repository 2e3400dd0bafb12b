package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
)

// runApp 执行命令，返回退出码和输出。
func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xfilelogd"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "basic 最简输出",
			args: []string{"render", "--utc", "--no-pid", "--no-user", "--time", "2024-03-05T14:07:09Z", "started"},
			want: "[2024-03-05T14:07:09Z] [info] started \n",
		},
		{
			name: "basic 带作用域和错误",
			args: []string{
				"render", "--utc", "--no-pid", "--no-user", "--time", "2024-03-05T14:07:09Z",
				"--level", "error", "--category", "Worker", "--event-id", "7",
				"--scope", "job-1", "--scope", "step-2", "--error", "boom", "failed",
			},
			want: "[2024-03-05T14:07:09Z] [fail] Worker[7] => job-1 => step-2: failed boom \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runApp(t, tt.args...)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderCommandJSON(t *testing.T) {
	code, out, errOut := runApp(t, "render", "-f", "JSON", "-l", "warn", "--no-pid", "--no-user",
		"--time", "2024-03-05T14:07:09Z", "--utc", "disk almost full")
	require.Equal(t, 0, code, errOut)

	var entry xformat.JSONEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "Warning", entry.Level)
	assert.Equal(t, "disk almost full", entry.Message)
	assert.Nil(t, entry.PID)
	assert.Nil(t, entry.User)
	assert.Nil(t, entry.Scopes)
}

func TestRenderCommandUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"缺少消息", []string{"render"}},
		{"多余参数", []string{"render", "a", "b"}},
		{"未知级别", []string{"render", "--level", "loud", "msg"}},
		{"非法时间", []string{"render", "--time", "yesterday", "msg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runApp(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, "参数错误")
		})
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := runApp(t,
		"--diag-level", "warn",
		"run", "--dir", dir, "--prefix", "worker", "--interval", "1ms", "--count", "3",
	)
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(filepath.Join(dir, "worker.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, "[info]")
		assert.Contains(t, line, "Worker running at: ")
	}
}

func TestRunCommandWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "xfilelog.yaml")
	content := "filelog:\n  file:\n    directory: " + dir + "\n    file_name_prefix: demo\n" +
		"    formatter_name: json\n  format:\n    capture_scopes: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	diagPath := filepath.Join(dir, "diag", "xfilelogd.log")

	code, _, errOut := runApp(t,
		"-c", cfgPath, "--diag-log", diagPath, "--diag-format", "json",
		"run", "--interval", "1ms", "--count", "2", "--category", "Job",
	)
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(filepath.Join(dir, "demo.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	var entry xformat.JSONEntry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "Information", entry.Level)
	assert.Equal(t, []string{"Job", "tick-2"}, entry.Scopes)

	diag, err := os.ReadFile(diagPath)
	require.NoError(t, err)
	assert.Contains(t, string(diag), "worker starting")
}

func TestRunCommandMetrics(t *testing.T) {
	dir := t.TempDir()
	diagPath := filepath.Join(dir, "diag.log")
	code, _, errOut := runApp(t,
		"--diag-log", diagPath, "--diag-format", "json",
		"run", "--dir", dir, "--prefix", "worker", "--interval", "1ms", "--count", "2", "--metrics",
	)
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(diagPath)
	require.NoError(t, err)
	got := make(map[string]float64)
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["msg"] == "metric" {
			got[m["name"].(string)] = m["value"].(float64)
		}
	}
	assert.Equal(t, float64(2), got["xfilelog.entries.enqueued"])
	assert.Equal(t, float64(2), got["xfilelog.entries.written"])
	assert.Positive(t, got["xfilelog.bytes.written"])
}

func TestRunCommandUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"非法间隔", []string{"run", "--interval", "0s"}, 2},
		{"负数次数", []string{"run", "--count", "-1"}, 2},
		{"非法诊断级别", []string{"--diag-level", "loud", "run", "--count", "1"}, 2},
		{"配置文件不存在", []string{"-c", "/nonexistent/xfilelog.yaml", "run", "--count", "1"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runApp(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestUsageError(t *testing.T) {
	err := usagef("bad %s", "flag")
	assert.Equal(t, "bad flag", err.Error())
}
