package xfilelog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
	"github.com/omeyang/xfilelog/pkg/observability/xlog"
	"github.com/omeyang/xfilelog/pkg/observability/xmetrics"
)

// Provider 按类别名称创建并复用 [Logger]，持有共享的处理器和选定的格式化器。
//
// 类别名称大小写不敏感，同一名称在 Provider 生命周期内只对应一个 Logger。
// [Provider.ApplyConfig] 替换处理器和格式化器，并立即推送给所有已创建的 Logger。
type Provider struct {
	registry *xformat.Registry
	procOpts []ProcessorOption
	diag     xlog.Logger
	recorder xmetrics.Recorder

	// mu 保护以下字段，读多写少
	mu        sync.RWMutex
	cfg       Config
	formatter xformat.Formatter
	processor *Processor
	loggers   map[string]*Logger
	closed    bool
}

// NewProvider 创建 Provider：解析格式化器并创建处理器。
func NewProvider(cfg Config, opts ...ProviderOption) (*Provider, error) {
	o := &providerOptions{
		diag:     xlog.Default(),
		recorder: xmetrics.NoopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := o.registry
	if registry == nil {
		registry = xformat.DefaultRegistry(&cfg.Format)
	}
	for _, f := range o.formatters {
		if err := registry.Register(f); err != nil {
			o.diag.Warn(context.Background(), "xfilelog: formatter not registered", xlog.Err(err))
		}
	}

	p := &Provider{
		registry: registry,
		procOpts: append([]ProcessorOption{WithDiagnostics(o.diag), WithRecorder(o.recorder)}, o.procOpts...),
		diag:     o.diag,
		recorder: o.recorder,
		loggers:  make(map[string]*Logger),
	}
	formatter, err := p.resolveFormatter(cfg)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	p.formatter = formatter
	p.processor = NewProcessor(cfg.File, p.procOpts...)
	return p, nil
}

// resolveFormatter 按名称解析格式化器（回退链见 [xformat.Registry.Resolve]），并推送格式化配置。
func (p *Provider) resolveFormatter(cfg Config) (xformat.Formatter, error) {
	f, err := p.registry.Resolve(cfg.File.FormatterName)
	if err != nil {
		return nil, fmt.Errorf("xfilelog: resolve formatter: %w", err)
	}
	if name := cfg.File.FormatterName; name != "" && !strings.EqualFold(name, f.Name()) {
		p.diag.Warn(context.Background(), "xfilelog: unknown formatter, falling back",
			slog.String("requested", name),
			slog.String(xmetrics.KeyFormatter, f.Name()),
		)
	}
	p.registry.Configure(&cfg.Format)
	return f, nil
}

func loggerKey(name string) string {
	return strings.ToLower(name)
}

// Logger 返回类别 name 的 Logger，不存在时创建。name 为空白时返回 [ErrEmptyName]。
func (p *Provider) Logger(name string) (*Logger, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	key := loggerKey(name)

	p.mu.RLock()
	l, ok := p.loggers[key]
	p.mu.RUnlock()
	if ok {
		return l, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[key]; ok {
		return l, nil
	}
	if p.closed {
		return nil, ErrProviderClosed
	}
	l = newLogger(name, p.bindingLocked())
	p.loggers[key] = l
	return l, nil
}

// bindingLocked 按当前状态构造 binding。调用方持有 mu。
func (p *Provider) bindingLocked() *binding {
	return &binding{
		minimum:   p.cfg.File.MinimumLogLevel,
		formatter: p.formatter,
		processor: p.processor,
	}
}

// ApplyConfig 应用新配置。
//
// 先排空并关闭旧处理器，再创建新处理器、重新解析格式化器，并把新的 binding
// 推送给所有已创建的 Logger。旧处理器关闭期间到达的条目走同步回退写入，不丢条目。
// 校验失败时保持原配置不变。
func (p *Provider) ApplyConfig(cfg Config) (err error) {
	if p == nil {
		return ErrNilProvider
	}
	_, span := xmetrics.Start(context.Background(), p.recorder, "reload")
	defer func() { span.End(err) }()

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrProviderClosed
	}
	formatter, err := p.resolveFormatter(cfg)
	if err != nil {
		return err
	}

	if err := p.processor.Close(); err != nil {
		p.diag.Warn(context.Background(), "xfilelog: previous processor shutdown", xlog.Err(err))
	}
	p.cfg = cfg
	p.formatter = formatter
	p.processor = NewProcessor(cfg.File, p.procOpts...)
	b := p.bindingLocked()
	for _, l := range p.loggers {
		l.bind.Store(b)
	}

	p.diag.Info(context.Background(), "xfilelog: configuration applied",
		slog.String(xmetrics.KeyFormatter, formatter.Name()),
		slog.String("minimum_level", cfg.File.MinimumLogLevel.String()),
	)
	return nil
}

// Config 返回当前配置。
func (p *Provider) Config() Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Formatter 返回当前格式化器。
func (p *Provider) Formatter() xformat.Formatter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.formatter
}

// Processor 返回当前处理器。
func (p *Provider) Processor() *Processor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processor
}

// Registry 返回格式化器注册表。
func (p *Provider) Registry() *xformat.Registry {
	return p.registry
}

// Shutdown 关闭处理器，见 [Processor.Shutdown]。之后不能再创建 Logger 或应用配置，
// 已有的 Logger 仍可使用（同步写入）。幂等。
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return ErrNilProvider
	}
	p.mu.Lock()
	p.closed = true
	proc := p.processor
	p.mu.Unlock()
	return proc.Shutdown(ctx)
}

// Close 以 [DefaultShutdownTimeout] 为期限关闭。
func (p *Provider) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return p.Shutdown(ctx)
}
