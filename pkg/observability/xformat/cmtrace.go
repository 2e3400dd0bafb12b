package xformat

import (
	"bytes"
	"strconv"
)

// CMTrace 兼容 CMTrace 日志查看器的单行格式：
//
//	<![LOG[message, exception]LOG]!><time="HH:mm:ss.fff+zz" date="MM-dd-yyyy" component="category[eventId].scope" context="user" type="N" thread="pid" file="">
//
// 所有属性始终输出；IncludeUser、IncludePID 关闭时对应属性值为空，
// CaptureScopes 关闭时 component 只含类别和事件 ID。
type CMTrace struct {
	base
}

var (
	_ Formatter    = (*CMTrace)(nil)
	_ Configurable = (*CMTrace)(nil)
)

const (
	cmtraceTimeLayout = "15:04:05.000-07"
	cmtraceDateLayout = "01-02-2006"
)

// NewCMTrace 创建 CMTrace 格式化器，opts 为 nil 时使用默认配置。
func NewCMTrace(opts *Options, fopts ...FormatterOption) *CMTrace {
	return &CMTrace{base: newBase(NameCMTrace, opts, fopts)}
}

// Format 实现 Formatter。
func (f *CMTrace) Format(buf *bytes.Buffer, rec *Record, scopes ScopeProvider) {
	text := rec.Message()
	if text == "" && rec.Err == nil {
		return
	}
	opts := f.Options()
	ts := f.timestamp(opts)

	buf.WriteString("<![LOG[")
	wrote := false
	if !isBlank(text) {
		buf.WriteString(oneLineComma(text))
		wrote = true
	}
	if rec.Err != nil {
		if wrote {
			buf.WriteString(", ")
		}
		buf.WriteString(oneLineComma(rec.Exception()))
	}
	buf.WriteString("]LOG]!><")

	buf.WriteString(`time="`)
	buf.WriteString(ts.Format(cmtraceTimeLayout))
	buf.WriteString(`" date="`)
	buf.WriteString(ts.Format(cmtraceDateLayout))

	buf.WriteString(`" component="`)
	buf.WriteString(rec.Category)
	buf.WriteByte('[')
	buf.WriteString(strconv.Itoa(rec.EventID.ID))
	buf.WriteByte(']')
	if opts.CaptureScopes {
		forEachScope(scopes, func(s string) {
			buf.WriteByte('.')
			buf.WriteString(oneLineComma(s))
		})
	}

	buf.WriteString(`" context="`)
	if opts.IncludeUser {
		buf.WriteString(f.user)
	}

	buf.WriteString(`" type="`)
	buf.WriteString(strconv.Itoa(CMTraceSeverity(rec.Level)))

	buf.WriteString(`" thread="`)
	if opts.IncludePID {
		buf.WriteString(strconv.Itoa(f.pid))
	}

	buf.WriteString(`" file="">`)
	buf.WriteByte('\n')
}

// CMTraceSeverity 返回级别对应的 CMTrace type 代码。
//
// Warning→2，Error 与 Critical 共用 3，Trace→4，Debug→5，Information→6，其余→0。
func CMTraceSeverity(l Level) int {
	switch l {
	case LevelWarning:
		return 2
	case LevelError, LevelCritical:
		return 3
	case LevelTrace:
		return 4
	case LevelDebug:
		return 5
	case LevelInformation:
		return 6
	default:
		return 0
	}
}
