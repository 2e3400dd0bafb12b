package xfilelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/avast/retry-go/v5"

	"github.com/omeyang/xfilelog/pkg/observability/xlog"
	"github.com/omeyang/xfilelog/pkg/observability/xmetrics"
	"github.com/omeyang/xfilelog/pkg/observability/xrotate"
	"github.com/omeyang/xfilelog/pkg/util/xfile"
)

// 失败阶段，用于诊断日志和 failures 计数器的 stage 属性。
const (
	stageOpen     = "open"
	stageWrite    = "write"
	stageClose    = "close"
	stageConsumer = "consumer"
	stageFallback = "fallback"
)

// Stats 处理器统计快照。
type Stats struct {
	// Enqueued 进入异步队列的条目数
	Enqueued int64
	// Written 成功写入的条目数（含同步回退）
	Written int64
	// Fallback 走同步回退路径的条目数
	Fallback int64
	// Rotations 文件切换次数
	Rotations int64
	// Failures 被吞掉的失败次数
	Failures int64
	// File 当前打开的文件路径，没有打开的文件时为空
	File string
}

// Processor 异步写入处理器：有界队列 + 单个后台消费者。
//
// 消费者是文件的唯一写入者，按入队顺序逐条写入并在每条后持久化刷盘。
// 每条写入前用写入时刻重新计算目标文件名，名称变化（大小写不敏感）时关闭旧文件、打开新文件。
//
// 队列关闭（[Processor.Shutdown] 或消费者失败）后，[Processor.Enqueue] 退化为同步写入，
// 失败只报告给诊断日志，不返回给调用方。
type Processor struct {
	namer xrotate.Namer
	opts  *processorOptions

	queue chan string

	// closing 关闭后生产者不再阻塞在满队列上
	closing   chan struct{}
	closeOnce sync.Once
	// sealMu 读锁覆盖生产者的入队过程，写锁用于设置 sealed
	sealMu sync.RWMutex
	sealed bool
	done   chan struct{}
	// released 在 Shutdown 结束等待（排空完成或超时）后关闭
	released chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error

	// writeMu 保护当前文件
	writeMu    sync.Mutex
	stream     *xrotate.Stream
	fileClosed bool

	enqueued  atomic.Int64
	written   atomic.Int64
	fallback  atomic.Int64
	rotations atomic.Int64
	failures  atomic.Int64
}

// NewProcessor 按 opts 创建处理器并启动后台消费者。
//
// 文件在第一次写入时才打开。调用方必须调用 [Processor.Shutdown] 或 [Processor.Close]。
func NewProcessor(opts FileOptions, options ...ProcessorOption) *Processor {
	o := defaultProcessorOptions()
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	namer := opts.Namer()
	namer.Directory = namer.Dir()
	p := &Processor{
		namer:    namer,
		opts:     o,
		queue:    make(chan string, o.capacity),
		closing:  make(chan struct{}),
		done:     make(chan struct{}),
		released: make(chan struct{}),
	}
	go p.run()
	return p
}

// Enqueue 提交一条已渲染的条目，空字符串被忽略。
//
// 队列满时阻塞直到消费者腾出空间。队列已关闭时先等消费者排空已入队的条目，
// 再在调用方 goroutine 中同步写入，同一生产者的条目不会越过它更早入队的条目。
// 等待以 Shutdown 的期限为上限。
func (p *Processor) Enqueue(entry string) {
	if entry == "" {
		return
	}

	p.sealMu.RLock()
	if !p.sealed {
		select {
		case p.queue <- entry:
			p.sealMu.RUnlock()
			p.enqueued.Add(1)
			xmetrics.Add(context.Background(), p.opts.recorder, xmetrics.CounterEnqueued, 1)
			return
		case <-p.closing:
		}
	}
	p.sealMu.RUnlock()

	p.awaitDrain()
	p.writeFallback(entry)
}

// awaitDrain 等待消费者退出，或 Shutdown 放弃等待。
func (p *Processor) awaitDrain() {
	select {
	case <-p.done:
	case <-p.released:
	}
}

// seal 关闭队列入口：返回后不会再有条目进入队列。可重复调用。
func (p *Processor) seal() {
	p.closeOnce.Do(func() { close(p.closing) })
	p.sealMu.Lock()
	p.sealed = true
	p.sealMu.Unlock()
}

// run 消费循环。
func (p *Processor) run() {
	defer close(p.done)
	for {
		select {
		case entry := <-p.queue:
			if err := p.consume(entry); err != nil {
				p.report(stageConsumer, err)
				p.seal()
				p.drain(p.writeFallback)
				return
			}
		case <-p.closing:
			p.seal()
			p.drain(func(entry string) {
				if err := p.consume(entry); err != nil {
					p.report(stageConsumer, err)
				}
			})
			return
		}
	}
}

// drain 处理队列中剩余的条目，队列空时返回。只能在 seal 之后调用。
func (p *Processor) drain(write func(string)) {
	for {
		select {
		case entry := <-p.queue:
			write(entry)
		default:
			return
		}
	}
}

// consume 写入一条，panic 转为错误。
func (p *Processor) consume(entry string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrConsumerPanic, r)
		}
	}()
	return p.write(entry)
}

// writeFallback 同步写入，失败只报告不返回。
func (p *Processor) writeFallback(entry string) {
	p.fallback.Add(1)
	xmetrics.Add(context.Background(), p.opts.recorder, xmetrics.CounterFallback, 1)
	if err := p.consume(entry); err != nil {
		p.report(stageFallback, err)
	}
}

// write 把条目追加到写入时刻对应的文件。
//
// 文件关闭后（Shutdown 完成）每次写入单独打开、追加、关闭目标文件。
func (p *Processor) write(entry string) error {
	target := p.namer.Path(p.opts.now())

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if p.fileClosed {
		return p.appendOnce(target, entry)
	}

	if p.stream == nil || !xrotate.SameFile(p.stream.Path(), target) {
		if p.stream != nil {
			old := p.stream
			p.stream = nil
			if err := old.Close(); err != nil {
				p.report(stageClose, err)
			}
			p.rotations.Add(1)
			xmetrics.Add(context.Background(), p.opts.recorder, xmetrics.CounterRotations, 1,
				xmetrics.String(xmetrics.KeyFile, old.Name()))
		}
		s, err := p.open(target)
		if err != nil {
			return err
		}
		p.stream = s
	}

	if err := p.stream.Append(entry); err != nil {
		// 出错的句柄不再复用，下一次写入重新打开
		broken := p.stream
		p.stream = nil
		return errors.Join(fmt.Errorf("xfilelog: write %s: %w", broken.Path(), err), broken.Close())
	}
	p.recordWritten(len(entry))
	return nil
}

// appendOnce 打开、追加、关闭。调用方持有 writeMu。
func (p *Processor) appendOnce(path, entry string) error {
	s, err := p.open(path)
	if err != nil {
		return err
	}
	if err := s.Append(entry); err != nil {
		return errors.Join(fmt.Errorf("xfilelog: write %s: %w", path, err), s.Close())
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("xfilelog: close %s: %w", path, err)
	}
	p.recordWritten(len(entry))
	return nil
}

// open 创建目录并打开文件，打开失败按配置重试；路径非法等错误不重试。
func (p *Processor) open(path string) (*xrotate.Stream, error) {
	if err := xfile.EnsureDirectory(filepath.Dir(path), xfile.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("xfilelog: create directory for %s: %w", path, err)
	}

	var stream *xrotate.Stream
	err := retry.New(
		retry.Attempts(p.opts.openAttempts),
		retry.Delay(p.opts.openDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	).Do(func() error {
		s, err := xrotate.OpenStream(path)
		if err != nil {
			if isPermanentOpenError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		}
		stream = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("xfilelog: open %s: %w", path, err)
	}
	return stream, nil
}

func isPermanentOpenError(err error) bool {
	return errors.Is(err, xrotate.ErrNotRegular) ||
		errors.Is(err, xfile.ErrEmptyPath) ||
		errors.Is(err, xfile.ErrInvalidPath) ||
		errors.Is(err, xfile.ErrPathTraversal) ||
		errors.Is(err, xfile.ErrNullByte)
}

func (p *Processor) recordWritten(n int) {
	p.written.Add(1)
	ctx := context.Background()
	xmetrics.Add(ctx, p.opts.recorder, xmetrics.CounterWritten, 1)
	xmetrics.Add(ctx, p.opts.recorder, xmetrics.CounterBytes, int64(n))
}

// report 记录被吞掉的失败。
func (p *Processor) report(stage string, err error) {
	p.failures.Add(1)
	ctx := context.Background()
	xmetrics.Add(ctx, p.opts.recorder, xmetrics.CounterFailures, 1, xmetrics.Stage(stage))
	p.opts.diag.Warn(ctx, "xfilelog: write pipeline failure",
		slog.String(xmetrics.KeyStage, stage),
		xlog.Err(err),
	)
}

// Shutdown 关闭队列入口，等待消费者排空已入队的条目，然后关闭当前文件。
//
// ctx 到期时不再等待，返回 [ErrShutdownTimeout]，消费者此后写入的条目逐条单独打开文件，
// 等待中的同步写入也随即放行，此时不再保证与积压条目的先后。
// 之后的 Enqueue 同步写入。幂等，重复调用返回第一次的结果。
func (p *Processor) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p.shutdownOnce.Do(func() {
		p.seal()

		var waitErr error
		select {
		case <-p.done:
		case <-ctx.Done():
			waitErr = fmt.Errorf("%w: %w", ErrShutdownTimeout, context.Cause(ctx))
		}
		close(p.released)

		p.writeMu.Lock()
		p.fileClosed = true
		var closeErr error
		if p.stream != nil {
			closeErr = p.stream.Close()
			p.stream = nil
		}
		p.writeMu.Unlock()

		if closeErr != nil {
			p.report(stageClose, closeErr)
		}
		p.shutdownErr = errors.Join(waitErr, closeErr)
	})
	return p.shutdownErr
}

// Close 以 [DefaultShutdownTimeout] 为期限调用 Shutdown。
func (p *Processor) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return p.Shutdown(ctx)
}

// Done 返回在消费者退出后关闭的 channel。
func (p *Processor) Done() <-chan struct{} {
	return p.done
}

// Closed 报告队列是否已关闭（关闭中或消费者已失败）。
func (p *Processor) Closed() bool {
	select {
	case <-p.closing:
		return true
	default:
		return false
	}
}

// CurrentFile 返回当前打开的文件路径，没有打开的文件时返回空字符串。
func (p *Processor) CurrentFile() string {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if p.stream == nil {
		return ""
	}
	return p.stream.Path()
}

// Stats 返回统计快照。
func (p *Processor) Stats() Stats {
	return Stats{
		Enqueued:  p.enqueued.Load(),
		Written:   p.written.Load(),
		Fallback:  p.fallback.Load(),
		Rotations: p.rotations.Load(),
		Failures:  p.failures.Load(),
		File:      p.CurrentFile(),
	}
}
