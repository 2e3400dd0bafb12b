package xformat

import (
	"bytes"
	"time"
)

// fixedTime 测试使用的固定时间（UTC）。
var fixedTime = time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.UTC)

func fixedClock() time.Time { return fixedTime }

// testOpts 构造 UTC 时间戳的测试配置。
func testOpts(pid, user, scopes bool) *Options {
	return &Options{
		UseUTCTimestamp: true,
		IncludePID:      pid,
		IncludeUser:     user,
		CaptureScopes:   scopes,
	}
}

// testIdentity 固定的进程身份。
func testIdentity() FormatterOption {
	return WithIdentity(42, `host\alice`)
}

// render 用格式化器渲染一条记录并返回文本。
func render(f Formatter, rec *Record, scopes ScopeProvider) string {
	var buf bytes.Buffer
	f.Format(&buf, rec, scopes)
	return buf.String()
}

// msgRecord 构造使用 MessageRender 的记录。
func msgRecord(level Level, msg string, err error) *Record {
	return &Record{
		Level:    level,
		Category: "App.Worker",
		EventID:  EventID{ID: 7, Name: "Tick"},
		State:    msg,
		Err:      err,
		Render:   MessageRender,
	}
}
