package xformat

import (
	"bytes"
	"strconv"
)

// Basic 最小化单行文本格式：
//
//	[pid] [timestamp] [code] [user] category[eventId] => scope1 => scope2: message exception
//
// pid、user 和 "类别+作用域" 段分别受 IncludePID、IncludeUser、CaptureScopes 控制，关闭时整段省略。
// 每个字段后跟一个空格，因此行尾（换行前）总有一个空格。
type Basic struct {
	base
}

var (
	_ Formatter    = (*Basic)(nil)
	_ Configurable = (*Basic)(nil)
)

// NewBasic 创建 Basic 格式化器，opts 为 nil 时使用默认配置。
func NewBasic(opts *Options, fopts ...FormatterOption) *Basic {
	return &Basic{base: newBase(NameBasic, opts, fopts)}
}

// Format 实现 Formatter。
func (f *Basic) Format(buf *bytes.Buffer, rec *Record, scopes ScopeProvider) {
	text := rec.Message()
	if text == "" && rec.Err == nil {
		return
	}
	opts := f.Options()

	if opts.IncludePID {
		buf.WriteByte('[')
		writePadded(buf, f.pid, 5)
		buf.WriteString("] ")
	}

	buf.WriteByte('[')
	buf.WriteString(formatSortable(f.timestamp(opts), opts.UseUTCTimestamp))
	buf.WriteString("] ")

	buf.WriteByte('[')
	buf.WriteString(rec.Level.ShortName())
	buf.WriteString("] ")

	if opts.IncludeUser {
		buf.WriteByte('[')
		buf.WriteString(f.user)
		buf.WriteString("] ")
	}

	if opts.CaptureScopes {
		buf.WriteString(rec.Category)
		buf.WriteByte('[')
		buf.WriteString(strconv.Itoa(rec.EventID.ID))
		buf.WriteByte(']')
		forEachScope(scopes, func(s string) {
			buf.WriteString(" => ")
			buf.WriteString(oneLine(s))
		})
		buf.WriteString(": ")
	}

	if !isBlank(text) {
		buf.WriteString(oneLine(text))
		buf.WriteByte(' ')
	}

	if rec.Err != nil {
		buf.WriteString(oneLine(rec.Exception()))
		buf.WriteByte(' ')
	}

	buf.WriteByte('\n')
}

// writePadded 以至少 width 位（左补零）写入非负整数。
func writePadded(buf *bytes.Buffer, n, width int) {
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		buf.WriteByte('0')
	}
	buf.WriteString(s)
}
