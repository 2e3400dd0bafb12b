package xrun

import (
	"context"
	"time"
)

// Ticker 返回周期执行 fn 的服务函数，immediate 为 true 时启动即执行一次。
// fn 返回错误时服务退出；ctx 取消时返回 ctx.Err()。
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}
		if immediate {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// OnShutdown 返回在 ctx 取消后执行一次 fn 的服务函数，用于释放资源（如刷新日志）。
//
// fn 收到的 context 不随 ctx 取消；fn 的错误会作为服务错误返回。
func OnShutdown(fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if fn == nil {
			return ErrNilFunc
		}
		<-ctx.Done()
		return fn(context.WithoutCancel(ctx))
	}
}
