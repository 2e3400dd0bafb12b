// Package xfilelog 提供只追加、按文件名滚动的本地文件日志输出。
//
// 写入管线分三段：
//
//   - [Logger]：每个类别一个前端，在调用方 goroutine 中用选定的格式化器渲染记录
//   - [Processor]：容量 1024 的有界队列和唯一的后台消费者，队列满时阻塞调用方
//   - xrotate.Stream：消费者持有的当前文件，每条写入后持久化刷盘
//
// 每次写入前用写入时刻重新计算目标文件名：
//
//	{Directory}/{FileNamePrefix}[.{RollingFileTimestampFormat}].{FileExtension}
//
// 名称变化时关闭旧文件、打开新文件，因此滚动是惰性的，不依赖定时器。
//
// 基本用法：
//
//	provider, err := xfilelog.NewProvider(xfilelog.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Close()
//
//	logger, _ := provider.Logger("Worker")
//	ctx = logger.BeginScope(ctx, "job-42")
//	logger.Info(ctx, "started")
//
// 配置重载通过 [Provider.ApplyConfig] 显式触发；[WatchConfig] 把 xconf 的文件监视接到它上面。
// 管线内部被吞掉的失败（打开、写入、关闭、消费者异常）报告给 xlog 诊断日志和 xmetrics 计数器，
// 永远不会返回给记录日志的调用方。
package xfilelog
