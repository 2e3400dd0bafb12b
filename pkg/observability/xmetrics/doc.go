// Package xmetrics 提供写入管线的可观测性接口（metrics + tracing）。
//
// 业务代码只依赖 [Recorder] 接口；默认 [NoopRecorder]，
// [NewOTelRecorder] 基于 OpenTelemetry 实现。
//
// # 使用示例
//
//	rec, _ := xmetrics.NewOTelRecorder(xmetrics.WithMeterProvider(mp))
//	xmetrics.Add(ctx, rec, xmetrics.CounterWritten, 1)
//
//	ctx, span := xmetrics.Start(ctx, rec, "reload")
//	defer func() { span.End(err) }()
//
// # 指标命名
//
//   - xfilelog.entries.enqueued / written / fallback
//   - xfilelog.bytes.written
//   - xfilelog.file.rotations
//   - xfilelog.failures（属性 stage）
//   - xfilelog.operation.total / duration（属性 operation、status）
package xmetrics
