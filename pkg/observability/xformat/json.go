package xformat

import (
	"bytes"
	"encoding/json"
)

// JSON 每条记录输出一个紧凑 JSON 对象，一行一个。
//
// 键始终存在；缺省的可选值序列化为 null。CaptureScopes 打开时
// scopes 的第一个元素是类别名，其后是作用域的字符串形式；
// 关闭时 scopes 为 null 而不是空数组，用于区分"未采集"和"没有作用域"。
type JSON struct {
	base
}

var (
	_ Formatter    = (*JSON)(nil)
	_ Configurable = (*JSON)(nil)
)

// JSONEntry JSON 格式的一条记录，字段顺序即输出顺序。
type JSONEntry struct {
	Timestamp string      `json:"timestamp"`
	Level     string      `json:"level"`
	Message   string      `json:"message"`
	Exception *string     `json:"exception"`
	Scopes    []string    `json:"scopes"`
	EventID   JSONEventID `json:"eventId"`
	PID       *int        `json:"pid"`
	User      *string     `json:"user"`
}

// JSONEventID eventId 字段，name 为空时输出 null。
type JSONEventID struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
}

// NewJSON 创建 JSON 格式化器，opts 为 nil 时使用默认配置。
func NewJSON(opts *Options, fopts ...FormatterOption) *JSON {
	return &JSON{base: newBase(NameJSON, opts, fopts)}
}

// Format 实现 Formatter。
func (f *JSON) Format(buf *bytes.Buffer, rec *Record, scopes ScopeProvider) {
	text := rec.Message()
	if text == "" && rec.Err == nil {
		return
	}
	opts := f.Options()

	entry := JSONEntry{
		Timestamp: formatSortable(f.timestamp(opts), opts.UseUTCTimestamp),
		Level:     rec.Level.String(),
		Message:   text,
		EventID:   JSONEventID{ID: rec.EventID.ID},
	}
	if rec.Err != nil {
		exc := rec.Exception()
		entry.Exception = &exc
	}
	if rec.EventID.Name != "" {
		name := rec.EventID.Name
		entry.EventID.Name = &name
	}
	if opts.IncludePID {
		pid := f.pid
		entry.PID = &pid
	}
	if opts.IncludeUser {
		user := f.user
		entry.User = &user
	}
	if opts.CaptureScopes {
		entry.Scopes = append(entry.Scopes, rec.Category)
		forEachScope(scopes, func(s string) {
			entry.Scopes = append(entry.Scopes, s)
		})
	}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// JSONEntry 只含字符串和整数字段，Encode 不会失败；Encode 自带结尾换行
	_ = enc.Encode(&entry)
}
