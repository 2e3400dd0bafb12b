package xrotate

import "io"

// 编译时断言：Rotator 与 Stream 满足 io 接口
var (
	_ io.WriteCloser = (Rotator)(nil)
	_ io.Writer      = (*Stream)(nil)
	_ io.Closer      = (*Stream)(nil)
)

// Rotator 按大小轮转的写入器
//
// 隐式实现 [io.WriteCloser]，可直接作为 xlog 的输出目标。
// 所有实现都必须是并发安全的。
//
// 约定：
//   - Close 后调用 Write 或 Rotate 返回 [ErrClosed]
//   - Rotate 可以在任意时刻调用
type Rotator interface {
	// Write 写入数据，触发轮转条件时自动轮转
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器，重复调用返回 [ErrClosed]
	Close() error

	// Rotate 手动触发轮转
	Rotate() error
}
