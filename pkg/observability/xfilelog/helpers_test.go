package xfilelog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omeyang/xfilelog/pkg/observability/xformat"
	"github.com/omeyang/xfilelog/pkg/observability/xlog"
	"github.com/omeyang/xfilelog/pkg/observability/xmetrics"
)

var fixedTime = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// testFileOptions 写入临时目录 app.log 的文件配置。
func testFileOptions(t *testing.T) FileOptions {
	t.Helper()
	cfg := DefaultConfig().File
	cfg.Directory = t.TempDir()
	cfg.FileNamePrefix = "app"
	return cfg
}

// testConfig UTC 时间戳、不输出 pid 和用户的配置。
func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		File:   testFileOptions(t),
		Format: xformat.Options{UseUTCTimestamp: true},
	}
}

func newTestProcessor(t *testing.T, opts FileOptions, extra ...ProcessorOption) *Processor {
	t.Helper()
	options := append([]ProcessorOption{WithDiagnostics(xlog.Discard())}, extra...)
	return NewProcessor(opts, options...)
}

func newTestProvider(t *testing.T, cfg Config, extra ...ProviderOption) *Provider {
	t.Helper()
	opts := append([]ProviderOption{
		WithRegistry(xformat.DefaultRegistry(nil,
			xformat.WithClock(fixedClock),
			xformat.WithIdentity(42, `host\alice`),
		)),
		WithProviderDiagnostics(xlog.Discard()),
	}, extra...)
	p, err := NewProvider(cfg, opts...)
	require.NoError(t, err)
	return p
}

// readLines 读取文件的全部行（不含换行符）。
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func logPath(opts FileOptions) string {
	return filepath.Join(opts.Directory, "app.log")
}

// waitWritten 等待处理器写入至少 n 条。
func waitWritten(t *testing.T, p *Processor, n int64) {
	t.Helper()
	require.Eventually(t, func() bool { return p.Stats().Written >= n },
		5*time.Second, time.Millisecond)
}

// settableClock 可在测试中修改的时间源。
type settableClock struct {
	t atomic.Pointer[time.Time]
}

func newSettableClock(t time.Time) *settableClock {
	c := &settableClock{}
	c.Set(t)
	return c
}

func (c *settableClock) Set(t time.Time) { c.t.Store(&t) }

func (c *settableClock) Now() time.Time { return *c.t.Load() }

// gateClock 第一次调用阻塞直到 release，用于让消费者停在一条写入上。
type gateClock struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateClock() *gateClock {
	return &gateClock{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateClock) Now() time.Time {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return fixedTime
}

// countingRecorder 记录计数器和操作的 Recorder。
type countingRecorder struct {
	mu       sync.Mutex
	counts   map[xmetrics.Counter]int64
	ops      []string
	opErrors []error
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: make(map[xmetrics.Counter]int64)}
}

func (r *countingRecorder) Add(_ context.Context, c xmetrics.Counter, n int64, _ ...xmetrics.Attr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[c] += n
}

func (r *countingRecorder) Start(ctx context.Context, op string, _ ...xmetrics.Attr) (context.Context, xmetrics.Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	return ctx, spanFunc(func(err error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.opErrors = append(r.opErrors, err)
	})
}

func (r *countingRecorder) Count(c xmetrics.Counter) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[c]
}

func (r *countingRecorder) Ops() ([]string, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...), append([]error(nil), r.opErrors...)
}

type spanFunc func(err error)

func (f spanFunc) End(err error) { f(err) }
