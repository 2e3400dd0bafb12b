package xmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestRecorder(t *testing.T) (Recorder, *sdkmetric.ManualReader, *tracetest.InMemoryExporter) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
		_ = tp.Shutdown(context.Background())
	})

	r, err := NewOTelRecorder(
		WithInstrumentationName("test"),
		WithMeterProvider(mp),
		WithTracerProvider(tp),
		nil,
	)
	require.NoError(t, err)
	return r, reader, exporter
}

// findMetric 在采集结果中查找指定名称的指标
func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return metricdata.Metrics{}
}

// sumOf 汇总 Int64 Sum 的所有数据点
func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", m.Name, m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewOTelRecorderDefault(t *testing.T) {
	r, err := NewOTelRecorder()
	require.NoError(t, err)
	r.Add(context.Background(), CounterWritten, 1)
}

func TestOTelRecorderAdd(t *testing.T) {
	r, reader, _ := newTestRecorder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Add(ctx, CounterWritten, 3)
	r.Add(ctx, CounterWritten, 2)
	r.Add(ctx, CounterBytes, 128)
	r.Add(ctx, CounterFailures, 1, Stage("open"), String("", "skipped"), Any("nil", nil))
	r.Add(ctx, Counter("unknown"), 1)

	assert.EqualValues(t, 5, sumOf(t, findMetric(t, reader, string(CounterWritten))), "已取消的 context 不影响计数")
	bytes := findMetric(t, reader, string(CounterBytes))
	assert.Equal(t, "By", bytes.Unit)
	assert.EqualValues(t, 128, sumOf(t, bytes))

	failures := findMetric(t, reader, string(CounterFailures))
	sum := failures.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	stage, ok := sum.DataPoints[0].Attributes.Value(KeyStage)
	require.True(t, ok)
	assert.Equal(t, "open", stage.AsString())
	assert.Equal(t, 1, sum.DataPoints[0].Attributes.Len())
}

func TestOTelRecorderSpan(t *testing.T) {
	r, reader, exporter := newTestRecorder(t)

	_, span := r.Start(context.Background(), "reload", String(KeyFormatter, "json"))
	span.End(nil)
	span.End(errors.New("ignored"))

	_, failed := r.Start(context.Background(), "")
	failed.End(errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "reload", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String(KeyFormatter, "json"))
	assert.Equal(t, "unknown", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "boom", spans[1].Status.Description)

	assert.EqualValues(t, 2, sumOf(t, findMetric(t, reader, metricOperationTotal)), "End 幂等")
	duration := findMetric(t, reader, metricOperationDuration)
	assert.IsType(t, metricdata.Histogram[float64]{}, duration.Data)
}

func TestToKeyValue(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want attribute.KeyValue
	}{
		{"string", String("k", "v"), attribute.String("k", "v")},
		{"bool", Bool("k", true), attribute.Bool("k", true)},
		{"int", Int("k", 7), attribute.Int("k", 7)},
		{"int64", Int64("k", 8), attribute.Int64("k", 8)},
		{"uint64", Attr{"k", uint64(9)}, attribute.Int64("k", 9)},
		{"uint64 溢出", Attr{"k", uint64(1 << 63)}, attribute.String("k", "9223372036854775808")},
		{"float64", Attr{"k", 1.5}, attribute.Float64("k", 1.5)},
		{"duration", Attr{"k", time.Millisecond}, attribute.Int64("k", 1_000_000)},
		{"其他类型", Attr{"k", []int{1}}, attribute.String("k", "[1]")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toKeyValue(tt.attr))
		})
	}
}
