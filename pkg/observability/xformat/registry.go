package xformat

import (
	"fmt"
	"strings"
	"sync"
)

// Registry 按名称（大小写不敏感）索引的格式化器注册表。
//
// 注册顺序被保留，用于 [Registry.Resolve] 的最终兜底。所有方法并发安全。
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Formatter
	order  []Formatter
}

// NewRegistry 创建注册表并依次注册 formatters。
//
// nil、空名称和重名的格式化器被跳过（重名时保留先注册者）。
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{byName: make(map[string]Formatter)}
	for _, f := range formatters {
		_ = r.Register(f)
	}
	return r
}

// DefaultRegistry 注册内置的 basic、cmtrace、json 三种格式化器，共享同一份配置。
func DefaultRegistry(opts *Options, fopts ...FormatterOption) *Registry {
	return NewRegistry(
		NewBasic(opts, fopts...),
		NewCMTrace(opts, fopts...),
		NewJSON(opts, fopts...),
	)
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register 注册格式化器。
func (r *Registry) Register(f Formatter) error {
	if f == nil {
		return ErrNilFormatter
	}
	key := registryKey(f.Name())
	if key == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFormatter, f.Name())
	}
	r.byName[key] = f
	r.order = append(r.order, f)
	return nil
}

// Get 按名称查找格式化器。
func (r *Registry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[registryKey(name)]
	return f, ok
}

// Resolve 按名称解析格式化器，解析链为：name → basic → 最先注册的格式化器。
//
// 名称为空或未注册不视为错误，日志可用性优先于配置的严格性。
// 仅当注册表为空时返回 [ErrNoFormatter]。
func (r *Registry) Resolve(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key := registryKey(name); key != "" {
		if f, ok := r.byName[key]; ok {
			return f, nil
		}
	}
	if f, ok := r.byName[NameBasic]; ok {
		return f, nil
	}
	if len(r.order) > 0 {
		return r.order[0], nil
	}
	return nil, ErrNoFormatter
}

// Names 按注册顺序返回全部名称。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.order))
	for _, f := range r.order {
		names = append(names, f.Name())
	}
	return names
}

// Len 返回已注册数量。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Configure 把 opts 推送给所有实现 [Configurable] 的格式化器，返回被更新的数量。
func (r *Registry) Configure(opts *Options) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, f := range r.order {
		if c, ok := f.(Configurable); ok {
			c.SetOptions(opts)
			n++
		}
	}
	return n
}
