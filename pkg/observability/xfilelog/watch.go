package xfilelog

import (
	"context"
	"fmt"

	"github.com/omeyang/xfilelog/pkg/config/xconf"
	"github.com/omeyang/xfilelog/pkg/observability/xlog"
)

// LoadConfig 从 c 的 path 路径读取配置，缺省字段使用 [DefaultConfig] 的值。
// path 为空时使用 [ConfigPath]。
func LoadConfig(c xconf.Config, path string) (Config, error) {
	if c == nil {
		return Config{}, ErrNilConfig
	}
	if path == "" {
		path = ConfigPath
	}
	cfg := DefaultConfig()
	if err := c.Unmarshal(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("xfilelog: load config: %w", err)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WatchConfig 监视 c 的配置文件，每次重载成功后把 path 下的配置应用到 provider。
//
// 失败（文件解析、配置校验、ApplyConfig）只记录到诊断日志，provider 保持原配置。
// 返回的 Watcher 已启动，调用方负责 Stop。
func WatchConfig(c xconf.Config, path string, provider *Provider, opts ...xconf.WatchOption) (*xconf.Watcher, error) {
	if c == nil {
		return nil, ErrNilConfig
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	w, err := xconf.Watch(c, func(cfg xconf.Config, err error) {
		ctx := context.Background()
		if err != nil {
			provider.diag.Warn(ctx, "xfilelog: config reload failed", xlog.Err(err))
			return
		}
		next, err := LoadConfig(cfg, path)
		if err != nil {
			provider.diag.Warn(ctx, "xfilelog: config reload rejected", xlog.Err(err))
			return
		}
		if err := provider.ApplyConfig(next); err != nil {
			provider.diag.Warn(ctx, "xfilelog: apply config failed", xlog.Err(err))
		}
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("xfilelog: watch config: %w", err)
	}
	w.Start()
	return w, nil
}
