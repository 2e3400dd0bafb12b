// Package xrotate 提供日志文件的写入与轮转。
//
// # 追加写入
//
// [Stream] 以 O_APPEND 打开文件，每次 [Stream.Append] 在返回前刷盘，
// 保证已返回的每一行在进程崩溃后仍然存在。Stream 本身不做轮转。
//
// # 按名称轮转
//
// [Namer] 根据目录、前缀、扩展名和滚动时间戳计算目标文件名。
// 调用方在每次写入前比较新旧名称（[SameFile]），不同则关闭旧 Stream 并打开新的。
// 时间戳格式支持 .NET 风格（"yyyyMMdd"），由 [ConvertLayout] 转换为 Go 布局。
//
// # 按大小轮转
//
// [NewLumberjack] 返回基于 lumberjack v2 的 [Rotator]，用于进程自身的诊断日志。
package xrotate
