package xformat

// Options 格式化器配置（FormatterOptions）。
//
// 以指针整体替换的方式更新：格式化器持有的 *Options 一经发布不再修改，
// 重载时构造新对象并通过 [Configurable.SetOptions] 原子替换。
type Options struct {
	// UseUTCTimestamp 使用 UTC 时间戳（带 Z 后缀），默认 false 使用本地时间
	UseUTCTimestamp bool `koanf:"use_utc_timestamp" json:"use_utc_timestamp"`

	// IncludePID 输出进程 ID，默认 true
	IncludePID bool `koanf:"include_pid" json:"include_pid"`

	// IncludeUser 输出运行进程的操作系统用户，默认 true
	IncludeUser bool `koanf:"include_user" json:"include_user"`

	// CaptureScopes 输出类别名和作用域链，默认 false
	CaptureScopes bool `koanf:"capture_scopes" json:"capture_scopes"`
}

// DefaultOptions 返回默认格式化器配置。
func DefaultOptions() *Options {
	return &Options{
		UseUTCTimestamp: false,
		IncludePID:      true,
		IncludeUser:     true,
		CaptureScopes:   false,
	}
}

// Clone 返回副本；nil 返回默认配置。
func (o *Options) Clone() *Options {
	if o == nil {
		return DefaultOptions()
	}
	c := *o
	return &c
}
