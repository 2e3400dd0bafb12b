package xformat

import "errors"

var (
	// ErrUnknownLevel 无法识别的级别字符串。
	ErrUnknownLevel = errors.New("xformat: unknown level")

	// ErrNilFormatter 注册了 nil 格式化器。
	ErrNilFormatter = errors.New("xformat: formatter is nil")

	// ErrEmptyName 格式化器名称为空。
	ErrEmptyName = errors.New("xformat: formatter name is empty")

	// ErrDuplicateFormatter 同名（大小写不敏感）格式化器已注册，保留先注册者。
	ErrDuplicateFormatter = errors.New("xformat: formatter already registered")

	// ErrNoFormatter 注册表为空，无法解析任何格式化器。
	ErrNoFormatter = errors.New("xformat: no formatter registered")
)
