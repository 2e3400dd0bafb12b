package xfilelog

import "errors"

var (
	// ErrEmptyName 日志类别名称为空。
	ErrEmptyName = errors.New("xfilelog: logger name is empty")

	// ErrNilProvider Provider 为 nil。
	ErrNilProvider = errors.New("xfilelog: provider is nil")

	// ErrNilConfig xconf.Config 为 nil。
	ErrNilConfig = errors.New("xfilelog: config source is nil")

	// ErrProviderClosed Provider 已关闭。
	ErrProviderClosed = errors.New("xfilelog: provider closed")

	// ErrShutdownTimeout 关闭时消费者未能在期限内排空队列。
	ErrShutdownTimeout = errors.New("xfilelog: shutdown timed out")

	// ErrConsumerPanic 消费者写入时发生 panic。
	ErrConsumerPanic = errors.New("xfilelog: consumer panic")

	// ErrInvalidLevel 最低级别超出范围。
	ErrInvalidLevel = errors.New("xfilelog: invalid minimum level")
)
