package xfilelog

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
)

// 所有类别共用一个渲染缓冲区，渲染和入队在同一把锁内完成，
// 因此各调用方的渲染顺序就是入队顺序。
var (
	renderMu  sync.Mutex
	renderBuf bytes.Buffer
)

// maxRetainedBuffer 渲染缓冲区超过该容量时释放，避免一条超长记录长期占用内存。
const maxRetainedBuffer = 64 << 10

// binding Logger 当前使用的配置、格式化器和处理器，整体替换。
type binding struct {
	minimum   xformat.Level
	formatter xformat.Formatter
	processor *Processor
}

// Logger 单个类别的日志前端，由 [Provider.Logger] 创建并复用。
//
// 配置重载后，已创建的 Logger 在下一次调用时即使用新的配置、格式化器和处理器。
// 所有方法并发安全。
type Logger struct {
	name string
	bind atomic.Pointer[binding]
}

func newLogger(name string, b *binding) *Logger {
	l := &Logger{name: name}
	l.bind.Store(b)
	return l
}

// Name 返回类别名称（保持首次创建时的大小写）。
func (l *Logger) Name() string {
	return l.name
}

// IsEnabled 报告 level 是否达到配置的最低级别（level >= minimum）。
func (l *Logger) IsEnabled(level xformat.Level) bool {
	return level.Enabled(l.bind.Load().minimum)
}

// Log 渲染一条记录并提交给处理器。
//
// 级别未启用时直接返回。render 为 nil 时使用 fmt.Sprint(state)。
// 作用域链取自 ctx（见 [Logger.BeginScope]）。
func (l *Logger) Log(ctx context.Context, level xformat.Level, id xformat.EventID, state any, err error, render xformat.RenderFunc) {
	if !l.IsEnabled(level) {
		return
	}
	b := l.bind.Load()
	rec := xformat.Record{
		Level:    level,
		Category: l.name,
		EventID:  id,
		State:    state,
		Err:      err,
		Render:   render,
	}
	scopes := xformat.ScopesFromContext(ctx)

	renderMu.Lock()
	defer renderMu.Unlock()
	renderBuf.Reset()
	b.formatter.Format(&renderBuf, &rec, scopes)
	if renderBuf.Len() == 0 {
		return
	}
	b.processor.Enqueue(renderBuf.String())
	if renderBuf.Cap() > maxRetainedBuffer {
		renderBuf = bytes.Buffer{}
	}
}

// Trace 记录 Trace 级别消息。
func (l *Logger) Trace(ctx context.Context, msg string) {
	l.Log(ctx, xformat.LevelTrace, xformat.EventID{}, msg, nil, nil)
}

// Debug 记录 Debug 级别消息。
func (l *Logger) Debug(ctx context.Context, msg string) {
	l.Log(ctx, xformat.LevelDebug, xformat.EventID{}, msg, nil, nil)
}

// Info 记录 Information 级别消息。
func (l *Logger) Info(ctx context.Context, msg string) {
	l.Log(ctx, xformat.LevelInformation, xformat.EventID{}, msg, nil, nil)
}

// Warn 记录 Warning 级别消息。
func (l *Logger) Warn(ctx context.Context, msg string) {
	l.Log(ctx, xformat.LevelWarning, xformat.EventID{}, msg, nil, nil)
}

// Error 记录 Error 级别消息，err 可以为 nil。
func (l *Logger) Error(ctx context.Context, err error, msg string) {
	l.Log(ctx, xformat.LevelError, xformat.EventID{}, msg, err, nil)
}

// Critical 记录 Critical 级别消息，err 可以为 nil。
func (l *Logger) Critical(ctx context.Context, err error, msg string) {
	l.Log(ctx, xformat.LevelCritical, xformat.EventID{}, msg, err, nil)
}

// Logf 按格式渲染消息，只在级别启用时才格式化。
func (l *Logger) Logf(ctx context.Context, level xformat.Level, format string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}
	l.Log(ctx, level, xformat.EventID{}, fmt.Sprintf(format, args...), nil, nil)
}

// BeginScope 返回压入作用域 v 的派生 context，在该 context 上记录的日志携带此作用域。
func (l *Logger) BeginScope(ctx context.Context, v any) context.Context {
	return xformat.WithScope(ctx, v)
}
