package xfilelog

import (
	"time"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
	"github.com/omeyang/xfilelog/pkg/observability/xlog"
	"github.com/omeyang/xfilelog/pkg/observability/xmetrics"
)

// 处理器默认值
const (
	// DefaultQueueCapacity 异步队列容量
	DefaultQueueCapacity = 1024

	// DefaultShutdownTimeout [Processor.Close] 等待消费者排空的时长
	DefaultShutdownTimeout = time.Second

	// DefaultOpenAttempts 打开文件的总尝试次数
	DefaultOpenAttempts = 3

	// DefaultOpenDelay 打开文件的重试间隔
	DefaultOpenDelay = 10 * time.Millisecond
)

// ProcessorOption 配置 [Processor] 的选项函数。
type ProcessorOption func(*processorOptions)

type processorOptions struct {
	diag         xlog.Logger
	recorder     xmetrics.Recorder
	now          func() time.Time
	capacity     int
	openAttempts uint
	openDelay    time.Duration
}

func defaultProcessorOptions() *processorOptions {
	return &processorOptions{
		diag:         xlog.Default(),
		recorder:     xmetrics.NoopRecorder{},
		now:          time.Now,
		capacity:     DefaultQueueCapacity,
		openAttempts: DefaultOpenAttempts,
		openDelay:    DefaultOpenDelay,
	}
}

// WithDiagnostics 设置报告内部失败的诊断日志，nil 被忽略。
func WithDiagnostics(l xlog.Logger) ProcessorOption {
	return func(o *processorOptions) {
		if l != nil {
			o.diag = l
		}
	}
}

// WithRecorder 设置计数器，nil 被忽略。
func WithRecorder(r xmetrics.Recorder) ProcessorOption {
	return func(o *processorOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithClock 设置计算滚动文件名的时间源，nil 被忽略。
func WithClock(now func() time.Time) ProcessorOption {
	return func(o *processorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithQueueCapacity 设置异步队列容量，非正值被忽略。
func WithQueueCapacity(n int) ProcessorOption {
	return func(o *processorOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithOpenRetry 设置打开文件的尝试次数和间隔。attempts 为 0 时保持默认。
func WithOpenRetry(attempts uint, delay time.Duration) ProcessorOption {
	return func(o *processorOptions) {
		if attempts > 0 {
			o.openAttempts = attempts
		}
		if delay >= 0 {
			o.openDelay = delay
		}
	}
}

// ProviderOption 配置 [Provider] 的选项函数。
type ProviderOption func(*providerOptions)

type providerOptions struct {
	registry   *xformat.Registry
	formatters []xformat.Formatter
	procOpts   []ProcessorOption
	diag       xlog.Logger
	recorder   xmetrics.Recorder
}

// WithRegistry 使用指定的格式化器注册表替代内置注册表，nil 被忽略。
func WithRegistry(r *xformat.Registry) ProviderOption {
	return func(o *providerOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithFormatters 向注册表追加自定义格式化器，与内置格式化器重名时保留内置实现。
func WithFormatters(formatters ...xformat.Formatter) ProviderOption {
	return func(o *providerOptions) {
		o.formatters = append(o.formatters, formatters...)
	}
}

// WithProcessorOptions 设置每次创建 [Processor] 时使用的选项。
func WithProcessorOptions(opts ...ProcessorOption) ProviderOption {
	return func(o *providerOptions) {
		o.procOpts = append(o.procOpts, opts...)
	}
}

// WithProviderDiagnostics 设置 Provider 及其处理器的诊断日志，nil 被忽略。
func WithProviderDiagnostics(l xlog.Logger) ProviderOption {
	return func(o *providerOptions) {
		if l != nil {
			o.diag = l
		}
	}
}

// WithProviderRecorder 设置 Provider 及其处理器的计数器，nil 被忽略。
func WithProviderRecorder(r xmetrics.Recorder) ProviderOption {
	return func(o *providerOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}
