// Package xrun 管理进程内多个服务的并发运行与优雅关闭。
//
// [Group] 基于 golang.org/x/sync/errgroup：任一服务出错即取消其他服务。
// [Run] 额外监听系统信号，收到信号时返回 [*SignalError]：
//
//	err := xrun.Run(ctx, nil,
//		xrun.Ticker(time.Second, true, work),
//		xrun.OnShutdown(func(ctx context.Context) error { return provider.Close() }),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//		// 正常退出
//	}
package xrun
