package xmetrics

import "context"

// Counter 写入管线的计数器名称。
type Counter string

// 写入管线计数器。
const (
	// CounterEnqueued 进入异步队列的条目数。
	CounterEnqueued Counter = "xfilelog.entries.enqueued"
	// CounterWritten 成功落盘的条目数（含同步回退写入）。
	CounterWritten Counter = "xfilelog.entries.written"
	// CounterBytes 成功落盘的字节数。
	CounterBytes Counter = "xfilelog.bytes.written"
	// CounterFallback 走同步回退路径的条目数。
	CounterFallback Counter = "xfilelog.entries.fallback"
	// CounterRotations 文件切换次数。
	CounterRotations Counter = "xfilelog.file.rotations"
	// CounterFailures 被吞掉的写入/打开/关闭失败次数。
	CounterFailures Counter = "xfilelog.failures"
)

// Counters 返回全部计数器，顺序固定。
func Counters() []Counter {
	return []Counter{
		CounterEnqueued, CounterWritten, CounterBytes,
		CounterFallback, CounterRotations, CounterFailures,
	}
}

// Attr 表示观测属性。
type Attr struct {
	Key   string
	Value any
}

// Span 表示一次被观测的操作（如配置重载、关闭）。
type Span interface {
	// End 结束观测，err 非 nil 时记为失败。
	End(err error)
}

// Recorder 写入管线的观测接口。
//
// 实现必须并发安全，且不得阻塞调用方。
type Recorder interface {
	// Add 累加计数器。
	Add(ctx context.Context, c Counter, n int64, attrs ...Attr)

	// Start 开始观测一次操作。
	Start(ctx context.Context, operation string, attrs ...Attr) (context.Context, Span)
}

// NoopRecorder 是空实现。
type NoopRecorder struct{}

// Add 空实现。
func (NoopRecorder) Add(context.Context, Counter, int64, ...Attr) {}

// Start 返回 ctx 和空跨度，nil ctx 被替换为 context.Background()。
func (NoopRecorder) Start(ctx context.Context, _ string, _ ...Attr) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 是空跨度实现。
type NoopSpan struct{}

// End 空实现。
func (NoopSpan) End(error) {}

// Add 使用 r 累加计数器，nil r 时不做任何事。
func Add(ctx context.Context, r Recorder, c Counter, n int64, attrs ...Attr) {
	if r == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.Add(ctx, c, n, attrs...)
}

// Start 使用 r 开始观测，保证返回非 nil 的 context 和 Span。
func Start(ctx context.Context, r Recorder, operation string, attrs ...Attr) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := r.Start(ctx, operation, attrs...)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
