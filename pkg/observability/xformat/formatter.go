package xformat

import (
	"bytes"
	"sync/atomic"
	"time"

	"github.com/omeyang/xfilelog/pkg/util/xproc"
)

// 内置格式化器名称。
const (
	NameBasic   = "basic"
	NameCMTrace = "cmtrace"
	NameJSON    = "json"
)

// Formatter 把一条记录连同作用域链渲染为文本。
//
// Format 把完整的一条（以换行结尾）写入 buf；消息为空且没有错误时不写任何内容。
// 实现必须可并发调用。
type Formatter interface {
	// Name 返回注册名，注册表按名称（大小写不敏感）解析
	Name() string

	// Format 渲染记录，scopes 可以为 nil
	Format(buf *bytes.Buffer, rec *Record, scopes ScopeProvider)
}

// Configurable 可在运行时替换格式化器配置的格式化器。
type Configurable interface {
	// SetOptions 原子替换配置，nil 表示恢复默认配置
	SetOptions(opts *Options)

	// Options 返回当前配置快照，调用方不得修改
	Options() *Options
}

// FormatterOption 内置格式化器的构造选项。
type FormatterOption func(*base)

// WithClock 替换时间源（主要用于测试），nil 被忽略。
func WithClock(now func() time.Time) FormatterOption {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIdentity 替换进程 ID 和用户名（默认取自 xproc）。
func WithIdentity(pid int, user string) FormatterOption {
	return func(b *base) {
		b.pid = pid
		b.user = user
	}
}

// base 内置格式化器的公共部分：名称、配置指针、时间源和进程身份。
type base struct {
	name string
	opts atomic.Pointer[Options]
	now  func() time.Time
	pid  int
	user string
}

func newBase(name string, opts *Options, fopts []FormatterOption) base {
	b := base{
		name: name,
		now:  time.Now,
		pid:  xproc.ProcessID(),
		user: xproc.UserName(),
	}
	for _, fo := range fopts {
		if fo != nil {
			fo(&b)
		}
	}
	b.opts.Store(opts.Clone())
	return b
}

// Name 返回格式化器名称。
func (b *base) Name() string { return b.name }

// SetOptions 原子替换配置。
func (b *base) SetOptions(opts *Options) { b.opts.Store(opts.Clone()) }

// Options 返回当前配置快照。
func (b *base) Options() *Options { return b.opts.Load() }

// timestamp 按配置返回 UTC 或本地时间。
func (b *base) timestamp(opts *Options) time.Time {
	t := b.now()
	if opts.UseUTCTimestamp {
		return t.UTC()
	}
	return t.Local()
}
