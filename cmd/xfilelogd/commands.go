package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xfilelog/pkg/config/xconf"
	"github.com/omeyang/xfilelog/pkg/lifecycle/xrun"
	"github.com/omeyang/xfilelog/pkg/observability/xfilelog"
	"github.com/omeyang/xfilelog/pkg/observability/xformat"
	"github.com/omeyang/xfilelog/pkg/observability/xlog"
	"github.com/omeyang/xfilelog/pkg/observability/xmetrics"
	"github.com/omeyang/xfilelog/pkg/observability/xrotate"
)

// 诊断日志轮转参数
const (
	diagMaxSizeMB  = 10
	diagMaxBackups = 3
)

// errTicksDone --count 次数用完，正常退出。
var errTicksDone = errors.New("ticks done")

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createRunCommand(),
		createRenderCommand(),
	}
}

// createRunCommand 创建 run 子命令。
func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "周期性写日志，直到收到退出信号",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "写日志间隔",
				Value:   time.Second,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "写满 N 次后退出，0 表示不限",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "日志类别名称",
				Value: "Worker",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "覆盖配置中的日志目录",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "覆盖配置中的文件名前缀",
			},
			&cli.StringFlag{
				Name:  "formatter",
				Usage: "覆盖配置中的格式化器 (basic/cmtrace/json)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "启用进程内指标，退出时把计数器合计写入诊断日志；未启用时使用宿主安装的全局 OTel provider（默认为空实现）",
			},
		},
		Action: cmdRun,
	}
}

// createRenderCommand 创建 render 子命令。
func createRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "渲染一条记录到 stdout",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "formatter", Aliases: []string{"f"}, Usage: "格式化器名称", Value: xformat.NameBasic},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "级别", Value: "info"},
			&cli.StringFlag{Name: "category", Usage: "类别名称", Value: "Preview"},
			&cli.IntFlag{Name: "event-id", Usage: "事件 ID"},
			&cli.StringFlag{Name: "event-name", Usage: "事件名称"},
			&cli.StringFlag{Name: "error", Usage: "附加的错误文本"},
			&cli.StringSliceFlag{Name: "scope", Usage: "作用域（可重复，外层在前），设置后打开作用域输出"},
			&cli.BoolFlag{Name: "utc", Usage: "使用 UTC 时间戳"},
			&cli.BoolFlag{Name: "no-pid", Usage: "不输出进程 ID"},
			&cli.BoolFlag{Name: "no-user", Usage: "不输出用户"},
			&cli.StringFlag{Name: "time", Usage: "固定时间戳（RFC3339），默认当前时间"},
		},
		Action: cmdRender,
	}
}

// buildDiagnostics 按全局选项构建诊断日志。
func buildDiagnostics(cmd *cli.Command) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevelString(cmd.String("diag-level")).
		SetFormat(cmd.String("diag-format")).
		SetAddSource(cmd.Bool("diag-source"))
	if path := cmd.String("diag-log"); path != "" {
		b.SetRotation(path,
			xrotate.WithMaxSize(diagMaxSizeMB),
			xrotate.WithMaxBackups(diagMaxBackups),
			xrotate.WithCompress(true),
		)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return nil, nil, usagef("诊断日志配置无效: %v", err)
	}
	return logger, cleanup, nil
}

// loadConfig 读取配置文件（未指定时使用默认配置）并应用命令行覆盖。
func loadConfig(cmd *cli.Command) (xfilelog.Config, xconf.Config, error) {
	cfg := xfilelog.DefaultConfig()
	var source xconf.Config
	if path := cmd.String("config"); path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return cfg, nil, fmt.Errorf("加载配置: %w", err)
		}
		if cfg, err = xfilelog.LoadConfig(c, ""); err != nil {
			return cfg, nil, err
		}
		source = c
	}
	if dir := cmd.String("dir"); dir != "" {
		cfg.File.Directory = dir
	}
	if prefix := cmd.String("prefix"); prefix != "" {
		cfg.File.FileNamePrefix = prefix
	}
	if name := cmd.String("formatter"); name != "" {
		cfg.File.FormatterName = name
	}
	return cfg, source, nil
}

// cmdRun 运行工作进程。
func cmdRun(ctx context.Context, cmd *cli.Command) (err error) {
	interval := cmd.Duration("interval")
	if interval <= 0 {
		return usagef("--interval 必须为正数")
	}
	count := cmd.Int("count")
	if count < 0 {
		return usagef("--count 不能为负数")
	}

	diag, cleanup, err := buildDiagnostics(cmd)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, cleanup()) }()

	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	recorderOpts := []xmetrics.Option{xmetrics.WithInstrumentationName("xfilelogd")}
	var metrics *metricsReporter
	if cmd.Bool("metrics") {
		metrics = newMetricsReporter()
		recorderOpts = append(recorderOpts, xmetrics.WithMeterProvider(metrics.provider))
	}
	recorder, err := xmetrics.NewOTelRecorder(recorderOpts...)
	if err != nil {
		return err
	}
	provider, err := xfilelog.NewProvider(cfg,
		xfilelog.WithProviderDiagnostics(diag),
		xfilelog.WithProviderRecorder(recorder),
	)
	if err != nil {
		return err
	}

	var watcher *xconf.Watcher
	if source != nil {
		if watcher, err = xfilelog.WatchConfig(source, "", provider); err != nil {
			return errors.Join(err, provider.Close())
		}
	}

	logger, err := provider.Logger(cmd.String("category"))
	if err != nil {
		return errors.Join(err, provider.Close())
	}

	diag.Info(ctx, "worker starting",
		slog.String("directory", cfg.File.Namer().Dir()),
		slog.String("formatter", provider.Formatter().Name()),
		slog.Duration("interval", interval),
	)

	ticks := 0
	worker := xrun.Ticker(interval, true, func(ctx context.Context) error {
		ticks++
		scoped := logger.BeginScope(ctx, fmt.Sprintf("tick-%d", ticks))
		logger.Logf(scoped, xformat.LevelInformation, "Worker running at: %s", time.Now().Format(time.RFC3339))
		if count > 0 && ticks >= count {
			return errTicksDone
		}
		return nil
	})
	shutdown := xrun.OnShutdown(func(ctx context.Context) error {
		var stopErr error
		if watcher != nil {
			stopErr = watcher.Stop()
		}
		return errors.Join(stopErr, provider.Close())
	})

	runErr := xrun.Run(ctx, []xrun.Option{xrun.WithName("xfilelogd"), xrun.WithLogger(diag)}, worker, shutdown)
	stats := provider.Processor().Stats()
	stopCtx := context.WithoutCancel(ctx)
	diag.Info(stopCtx, "worker stopped",
		slog.Int64("written", stats.Written),
		slog.Int64("failures", stats.Failures),
	)
	var metricsErr error
	if metrics != nil {
		metricsErr = errors.Join(metrics.report(stopCtx, diag), metrics.shutdown(stopCtx))
	}

	switch {
	case runErr == nil, errors.Is(runErr, xrun.ErrSignal), errors.Is(runErr, errTicksDone):
		return metricsErr
	default:
		return errors.Join(runErr, metricsErr)
	}
}

// cmdRender 渲染一条记录。
func cmdRender(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return usagef("render 需要且只需要一个消息参数")
	}
	level, err := xformat.ParseLevel(cmd.String("level"))
	if err != nil {
		return usagef("%v", err)
	}

	now := time.Now()
	if s := cmd.String("time"); s != "" {
		if now, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return usagef("--time: %v", err)
		}
	}

	scopes := cmd.StringSlice("scope")
	opts := &xformat.Options{
		UseUTCTimestamp: cmd.Bool("utc"),
		IncludePID:      !cmd.Bool("no-pid"),
		IncludeUser:     !cmd.Bool("no-user"),
		CaptureScopes:   len(scopes) > 0,
	}
	registry := xformat.DefaultRegistry(opts, xformat.WithClock(func() time.Time { return now }))
	f, err := registry.Resolve(cmd.String("formatter"))
	if err != nil {
		return err
	}

	var recErr error
	if s := cmd.String("error"); s != "" {
		recErr = errors.New(s)
	}
	rec := &xformat.Record{
		Level:    level,
		Category: cmd.String("category"),
		EventID:  xformat.EventID{ID: cmd.Int("event-id"), Name: cmd.String("event-name")},
		State:    cmd.Args().First(),
		Err:      recErr,
		Render:   xformat.MessageRender,
	}
	list := make(xformat.ScopeList, 0, len(scopes))
	for _, s := range scopes {
		list = append(list, s)
	}

	var buf bytes.Buffer
	f.Format(&buf, rec, list)
	_, err = cmd.Root().Writer.Write(buf.Bytes())
	return err
}
