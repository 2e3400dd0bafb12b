package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/omeyang/xfilelog/pkg/util/xfile"
)

// DefaultFileMode 日志文件的创建权限。
const DefaultFileMode os.FileMode = 0o644

// Stream 以追加方式打开的日志文件。
//
// 每次 [Stream.Append] 都会把数据同步刷到存储设备后才返回（write-through）。
// O_APPEND 让内核在每次写入前定位到文件末尾，其他进程可以同时读写同一文件。
// 方法并发安全。
type Stream struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	size   int64
	closed bool
}

// OpenStream 以追加模式打开（必要时创建）path。
//
// 父目录必须已存在；path 存在但不是普通文件时返回 [ErrNotRegular]。
func OpenStream(path string) (*Stream, error) {
	safePath, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, err
	}

	//#nosec G304 -- 路径由配置生成并已规范化
	f, err := os.OpenFile(safePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("xrotate: open %s: %w", safePath, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xrotate: stat %s: %w", safePath, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, safePath)
	}

	return &Stream{f: f, path: safePath, size: info.Size()}, nil
}

// Append 追加 text 并同步刷盘。
func (s *Stream) Append(text string) error {
	_, err := s.write([]byte(text))
	return err
}

// Write 实现 io.Writer，语义同 [Stream.Append]。
func (s *Stream) Write(p []byte) (int, error) {
	return s.write(p)
}

func (s *Stream) write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	n, err := s.f.Write(p)
	s.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("xrotate: write %s: %w", s.path, err)
	}
	if err := syncData(s.f); err != nil {
		return n, fmt.Errorf("xrotate: sync %s: %w", s.path, err)
	}
	return n, nil
}

// Size 返回当前文件大小（打开时的大小加上本 Stream 写入的字节数）。
func (s *Stream) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// Path 返回文件完整路径。
func (s *Stream) Path() string { return s.path }

// Name 返回文件名（不含目录）。
func (s *Stream) Name() string { return filepath.Base(s.path) }

// Close 刷盘并释放文件句柄，重复调用返回 [ErrClosed]。
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	syncErr := s.f.Sync()
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("xrotate: close %s: %w", s.path, err)
	}
	if syncErr != nil {
		return fmt.Errorf("xrotate: sync %s: %w", s.path, syncErr)
	}
	return nil
}
