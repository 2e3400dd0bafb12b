package xrotate

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omeyang/xfilelog/pkg/util/xfile"
	"github.com/omeyang/xfilelog/pkg/util/xproc"
)

// 命名默认值
const (
	// DefaultExtension 默认扩展名
	DefaultExtension = "log"

	// DefaultPattern 默认滚动时间戳格式
	DefaultPattern = "yyyyMMdd"

	// fallbackPrefix 进程名不可用时的文件前缀
	fallbackPrefix = "app"
)

// Namer 计算日志文件的目标名称：
//
//	{Directory}/{Prefix}[.{timestamp}].{Extension}
//
// 时间戳只在 Rolling 为 true 时出现，由调用方在每次写入时传入的时间计算，
// 因此文件切换是惰性的：名称变化后的第一次写入才会打开新文件。
// 拼接完成后删除文件名中的非法字符。
type Namer struct {
	// Directory 日志目录，为空时使用 os.TempDir()
	Directory string

	// Prefix 文件名前缀，为空时使用进程名
	Prefix string

	// Extension 扩展名，其中的 '.' 会被删除，为空时使用 [DefaultExtension]
	Extension string

	// Rolling 是否在文件名中嵌入时间戳
	Rolling bool

	// Pattern 时间戳格式（.NET 风格或 Go 布局），为空时使用 [DefaultPattern]
	Pattern string
}

// FileName 返回 t 时刻的目标文件名（不含目录）。
func (n Namer) FileName(t time.Time) string {
	var b strings.Builder
	b.WriteString(n.prefix())
	if n.Rolling {
		b.WriteByte('.')
		b.WriteString(t.Format(n.Layout()))
	}
	b.WriteByte('.')
	b.WriteString(n.extension())
	return xfile.StripInvalidFileNameChars(b.String())
}

// Path 返回 t 时刻的目标文件完整路径。
func (n Namer) Path(t time.Time) string {
	return filepath.Join(n.Dir(), n.FileName(t))
}

// Dir 返回删除非法字符后的目录，为空时返回 os.TempDir()。
//
// 相对目录（包括 "../logs" 这类向上引用）按当前工作目录解析为绝对路径。
func (n Namer) Dir() string {
	dir := xfile.StripInvalidPathChars(strings.TrimSpace(n.Directory))
	if dir == "" {
		return os.TempDir()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// Layout 返回滚动时间戳对应的 Go 时间布局。
func (n Namer) Layout() string {
	pattern := strings.TrimSpace(n.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}
	return ConvertLayout(pattern)
}

func (n Namer) prefix() string {
	if p := strings.TrimSpace(n.Prefix); p != "" {
		return p
	}
	if p := xproc.ProcessName(); p != "" {
		return p
	}
	return fallbackPrefix
}

func (n Namer) extension() string {
	if ext := strings.ReplaceAll(strings.TrimSpace(n.Extension), ".", ""); ext != "" {
		return ext
	}
	return DefaultExtension
}

// SameFile 报告两个文件名是否指向同一文件（大小写不敏感）。
func SameFile(a, b string) bool {
	return strings.EqualFold(a, b)
}
