// Package observability 提供日志输出与可观测性相关的子包。
//
// 子包列表：
//   - xfilelog: 只追加、按文件名滚动的文件日志输出（队列、处理器、前端、Provider）
//   - xformat: 日志记录契约与格式化器（basic、cmtrace、json）
//   - xrotate: 文件写入流、目标文件命名、按大小轮转
//   - xlog: 写入管线自身的诊断日志，基于 log/slog
//   - xmetrics: 写入管线计数器，基于 OpenTelemetry
//
// 设计原则：
//   - 记录日志永远不会让宿主失败，管线内部的失败只报告给诊断日志和计数器
//   - 配置以整体替换的方式更新，读者不会看到部分更新的配置
package observability
