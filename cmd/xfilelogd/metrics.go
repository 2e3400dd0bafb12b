package main

import (
	"context"
	"fmt"
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xfilelog/pkg/observability/xlog"
)

// metricsReporter 进程内的 MeterProvider，退出时汇总一次计数器写入诊断日志。
type metricsReporter struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

func newMetricsReporter() *metricsReporter {
	reader := sdkmetric.NewManualReader()
	return &metricsReporter{
		reader:   reader,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	}
}

// report 收集一次，按指标名输出 Int64 计数器的合计值。
func (m *metricsReporter) report(ctx context.Context, diag xlog.Logger) error {
	var rm metricdata.ResourceMetrics
	if err := m.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			diag.Info(ctx, "metric", slog.String("name", md.Name), slog.Int64("value", total))
		}
	}
	return nil
}

func (m *metricsReporter) shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
