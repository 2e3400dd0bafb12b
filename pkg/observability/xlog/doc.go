// Package xlog 基于 log/slog 的诊断日志。
//
// 写入管线在热路径上吞掉所有错误（日志不能让宿主崩溃），这些错误通过 xlog 上报，
// 便于运维发现磁盘满、权限错误等问题。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/app/diag.log").
//		Build()
//	defer cleanup()
//
// # 全局 Logger
//
//   - [Default]: 惰性初始化（stderr、Info、text）
//   - [SetDefault]: 替换全局 Logger（nil 被忽略）
//   - [Discard]: 丢弃所有输出
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)，与 slog 兼容，
// 可通过 [ParseLevel] 从字符串解析，并支持配置文件直接反序列化。
package xlog
