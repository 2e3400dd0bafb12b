package xformat

import (
	"fmt"
	"strings"
	"time"
)

// sortableLayout 可排序时间格式（秒精度，无时区）。
const sortableLayout = "2006-01-02T15:04:05"

var (
	spaceReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	commaReplacer = strings.NewReplacer("\r\n", ", ", "\n", ", ", "\r", ", ")
)

// oneLine 把换行折叠为单个空格，保证一条记录只占一行。
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return spaceReplacer.Replace(s)
}

// oneLineComma 把换行折叠为 ", "。
func oneLineComma(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return commaReplacer.Replace(s)
}

// isBlank 报告字符串是否为空或全为空白。
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// formatSortable 输出 2006-01-02T15:04:05，UTC 时追加 Z。
func formatSortable(t time.Time, utc bool) string {
	s := t.Format(sortableLayout)
	if utc {
		return s + "Z"
	}
	return s
}

// scopeString 作用域值的字符串形式。
func scopeString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// forEachScope 在 scopes 非 nil 时按顺序访问作用域字符串。
func forEachScope(scopes ScopeProvider, visit func(s string)) {
	if scopes == nil {
		return
	}
	scopes.ForEachScope(func(v any) {
		visit(scopeString(v))
	})
}
