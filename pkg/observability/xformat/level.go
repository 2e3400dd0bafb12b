package xformat

import (
	"fmt"
	"strings"
)

// Level 日志严重级别，数值越大越严重。
//
// 取值与常见宿主日志框架保持一致：Trace < Debug < Information < Warning < Error < Critical < None。
type Level int

// 日志级别常量。
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelCritical
	LevelNone
)

// String 返回级别全称（如 "Information"），JSON 格式化器使用该值。
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "Trace"
	case LevelDebug:
		return "Debug"
	case LevelInformation:
		return "Information"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelCritical:
		return "Critical"
	case LevelNone:
		return "None"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ShortName 返回固定 4 字母级别代码，Basic 格式化器使用该值。
// 未知级别返回 "none"。
func (l Level) ShortName() string {
	switch l {
	case LevelTrace:
		return "trce"
	case LevelDebug:
		return "dbug"
	case LevelInformation:
		return "info"
	case LevelWarning:
		return "warn"
	case LevelError:
		return "fail"
	case LevelCritical:
		return "crit"
	default:
		return "none"
	}
}

// Enabled 报告在最低级别 minimum 下本级别是否需要记录（l >= minimum）。
func (l Level) Enabled(minimum Level) bool {
	return l >= minimum
}

// MarshalText 实现 encoding.TextMarshaler 接口。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析级别字符串（大小写不敏感，自动 TrimSpace）。
//
// 支持全称、4 字母代码以及常见别名：
//
//	trace/trce
//	debug/dbug
//	information/info
//	warning/warn
//	error/fail/err
//	critical/crit/fatal
//	none
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "trce":
		return LevelTrace, nil
	case "debug", "dbug":
		return LevelDebug, nil
	case "information", "info":
		return LevelInformation, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error", "fail", "err":
		return LevelError, nil
	case "critical", "crit", "fatal":
		return LevelCritical, nil
	case "none":
		return LevelNone, nil
	default:
		return LevelInformation, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
