package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key
const (
	// KeyError 错误
	KeyError = "error"

	// KeyStack 调用栈
	KeyStack = "stack"

	// KeyDuration 耗时
	KeyDuration = "duration"

	// KeyCount 计数
	KeyCount = "count"

	// KeyComponent 组件名称
	KeyComponent = "component"

	// KeyFile 文件路径
	KeyFile = "file"
)

// Err 创建错误属性，err 为 nil 时返回会被 slog 忽略的空属性
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Count 创建计数属性
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Component 创建组件名称属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// File 创建文件路径属性
func File(path string) slog.Attr {
	return slog.String(KeyFile, path)
}
