// xlog.go 定义核心接口：Logger、Leveler、LoggerWithLevel
//
// xlog 是进程内部的诊断日志，记录写入管线自身吞掉的错误（打开失败、
// 同步回退写入失败、消费者异常等），与业务日志记录的落盘路径完全独立。
package xlog

import (
	"context"
	"log/slog"
)

// Logger 诊断日志接口
//
// 所有方法都需要 context.Context 参数；方法签名只接受 slog.Attr。
type Logger interface {
	// Debug 记录 Debug 级别日志
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)

	// Info 记录 Info 级别日志
	Info(ctx context.Context, msg string, attrs ...slog.Attr)

	// Warn 记录 Warn 级别日志
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)

	// Error 记录 Error 级别日志
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// Stack 记录带当前 goroutine 调用栈的错误日志
	Stack(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回带额外属性的派生 Logger，派生 logger 共享父级的级别
	With(attrs ...slog.Attr) Logger
}

// Leveler 级别控制接口
type Leveler interface {
	// SetLevel 动态设置日志级别
	SetLevel(level Level)

	// GetLevel 获取当前日志级别
	GetLevel() Level

	// Enabled 检查指定级别是否启用
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 组合接口：Logger + Leveler，[Builder.Build] 返回此接口
type LoggerWithLevel interface {
	Logger
	Leveler
}
