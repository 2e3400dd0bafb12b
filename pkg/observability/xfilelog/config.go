package xfilelog

import (
	"fmt"
	"strings"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
	"github.com/omeyang/xfilelog/pkg/observability/xrotate"
)

// ConfigPath 配置文件中 xfilelog 配置所在的路径。
const ConfigPath = "filelog"

// FileOptions 文件输出配置（FileOutputOptions）。
type FileOptions struct {
	// Directory 日志目录，为空时使用系统临时目录
	Directory string `koanf:"directory" json:"directory"`

	// FileNamePrefix 文件名前缀，为空时使用进程名
	FileNamePrefix string `koanf:"file_name_prefix" json:"file_name_prefix"`

	// FileExtension 扩展名，默认 "log"
	FileExtension string `koanf:"file_extension" json:"file_extension"`

	// UseRollingFiles 文件名中嵌入时间戳，默认 false
	UseRollingFiles bool `koanf:"use_rolling_files" json:"use_rolling_files"`

	// RollingFileTimestampFormat 滚动时间戳格式，默认 "yyyyMMdd"
	RollingFileTimestampFormat string `koanf:"rolling_file_timestamp_format" json:"rolling_file_timestamp_format"`

	// MinimumLogLevel 最低输出级别，默认 Trace
	MinimumLogLevel xformat.Level `koanf:"minimum_log_level" json:"minimum_log_level"`

	// FormatterName 格式化器名称，未知或为空时回退到 basic
	FormatterName string `koanf:"formatter_name" json:"formatter_name"`
}

// Namer 返回按本配置计算文件名的 Namer。
func (o FileOptions) Namer() xrotate.Namer {
	return xrotate.Namer{
		Directory: o.Directory,
		Prefix:    o.FileNamePrefix,
		Extension: o.FileExtension,
		Rolling:   o.UseRollingFiles,
		Pattern:   o.RollingFileTimestampFormat,
	}
}

// Config xfilelog 的完整配置。
type Config struct {
	File   FileOptions     `koanf:"file" json:"file"`
	Format xformat.Options `koanf:"format" json:"format"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() Config {
	return Config{
		File: FileOptions{
			FileExtension:              xrotate.DefaultExtension,
			RollingFileTimestampFormat: xrotate.DefaultPattern,
			MinimumLogLevel:            xformat.LevelTrace,
		},
		Format: *xformat.DefaultOptions(),
	}
}

// Normalize 去除首尾空白并填充默认值，返回新副本。
func (c Config) Normalize() Config {
	f := &c.File
	f.Directory = strings.TrimSpace(f.Directory)
	f.FileNamePrefix = strings.TrimSpace(f.FileNamePrefix)
	f.FileExtension = strings.TrimSpace(f.FileExtension)
	if f.FileExtension == "" {
		f.FileExtension = xrotate.DefaultExtension
	}
	f.RollingFileTimestampFormat = strings.TrimSpace(f.RollingFileTimestampFormat)
	if f.RollingFileTimestampFormat == "" {
		f.RollingFileTimestampFormat = xrotate.DefaultPattern
	}
	f.FormatterName = strings.TrimSpace(f.FormatterName)
	return c
}

// Validate 检查配置是否可用。
func (c Config) Validate() error {
	if lvl := c.File.MinimumLogLevel; lvl < xformat.LevelTrace || lvl > xformat.LevelNone {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, lvl)
	}
	return nil
}
