package xmetrics

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xfilelog/xmetrics"

	metricOperationTotal    = "xfilelog.operation.total"
	metricOperationDuration = "xfilelog.operation.duration"
)

type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel Recorder 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider。
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelRecorder 创建基于 OpenTelemetry 的 Recorder。
//
// 每个 [Counter] 对应一个 Int64Counter；Start 创建 trace span，
// 并在 End 时记录 xfilelog.operation.total 与 xfilelog.operation.duration。
func NewOTelRecorder(opts ...Option) (Recorder, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)
	r := &otelRecorder{
		tracer:   cfg.tracerProvider.Tracer(cfg.instrumentationName),
		counters: make(map[Counter]metric.Int64Counter, len(Counters())),
	}

	for _, c := range Counters() {
		counter, err := meter.Int64Counter(string(c), metric.WithUnit(counterUnit(c)))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCreateCounter, c, err)
		}
		r.counters[c] = counter
	}

	total, err := meter.Int64Counter(
		metricOperationTotal,
		metric.WithDescription("total operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}
	duration, err := meter.Float64Histogram(
		metricOperationDuration,
		metric.WithDescription("operation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateHistogram, err)
	}
	r.total = total
	r.duration = duration
	return r, nil
}

func counterUnit(c Counter) string {
	if c == CounterBytes {
		return "By"
	}
	return "1"
}

type otelRecorder struct {
	tracer   trace.Tracer
	counters map[Counter]metric.Int64Counter
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

// Add 累加计数器，未知计数器被忽略。
func (r *otelRecorder) Add(ctx context.Context, c Counter, n int64, attrs ...Attr) {
	counter, ok := r.counters[c]
	if !ok {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	counter.Add(context.WithoutCancel(ctx), n, metric.WithAttributes(attrsToOTel(attrs)...))
}

// Start 开始一次观测跨度。
func (r *otelRecorder) Start(ctx context.Context, operation string, attrs ...Attr) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if operation == "" {
		operation = "unknown"
	}

	kvs := append([]attribute.KeyValue{attribute.String("operation", operation)}, attrsToOTel(attrs)...)
	ctx, span := r.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(kvs...),
	)
	return ctx, &otelSpan{
		span:      span,
		recorder:  r,
		ctx:       ctx,
		operation: operation,
		start:     time.Now(),
	}
}

type otelSpan struct {
	span      trace.Span
	recorder  *otelRecorder
	ctx       context.Context
	operation string
	start     time.Time
	endOnce   sync.Once
}

// End 结束观测并记录结果，多次调用只记录一次。
func (s *otelSpan) End(err error) {
	s.endOnce.Do(func() {
		status := "ok"
		if err != nil {
			status = "error"
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		} else {
			s.span.SetStatus(codes.Ok, "")
		}
		s.span.End()

		// 调用方 context 可能已取消，指标仍需记录
		ctx := context.WithoutCancel(s.ctx)
		attrs := metric.WithAttributes(
			attribute.String("operation", s.operation),
			attribute.String("status", status),
		)
		s.recorder.total.Add(ctx, 1, attrs)
		s.recorder.duration.Record(ctx, time.Since(s.start).Seconds(), attrs)
	})
}

func attrsToOTel(attrs []Attr) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	converted := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Key == "" || attr.Value == nil {
			continue
		}
		converted = append(converted, toKeyValue(attr))
	}
	return converted
}

func toKeyValue(attr Attr) attribute.KeyValue {
	switch v := attr.Value.(type) {
	case string:
		return attribute.String(attr.Key, v)
	case bool:
		return attribute.Bool(attr.Key, v)
	case int:
		return attribute.Int(attr.Key, v)
	case int64:
		return attribute.Int64(attr.Key, v)
	case uint64:
		if v <= math.MaxInt64 {
			return attribute.Int64(attr.Key, int64(v))
		}
		return attribute.String(attr.Key, fmt.Sprint(v))
	case float64:
		return attribute.Float64(attr.Key, v)
	case time.Duration:
		return attribute.Int64(attr.Key, v.Nanoseconds())
	default:
		return attribute.String(attr.Key, fmt.Sprint(v))
	}
}
