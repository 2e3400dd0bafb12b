// xfilelogd 是 xfilelog 的示例宿主进程。
//
// 用法:
//
//	xfilelogd [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（YAML/JSON），修改后自动重载
//	    --diag-log    诊断日志文件（按大小轮转），默认输出到 stderr
//	    --diag-level  诊断日志级别 (debug/info/warn/error)，默认 info
//	    --diag-format 诊断日志格式 (text/json)，默认 text
//	    --diag-source 诊断日志附带源码位置
//
// 命令:
//
//	run      周期性写日志的工作进程，收到 SIGINT/SIGTERM 后优雅退出
//	render   用指定格式化器渲染一条记录到 stdout（格式预览）
//
// 退出码:
//
//	0: 成功（含信号退出）
//	1: 运行失败
//	2: 参数错误
//
// 示例:
//
//	xfilelogd run --dir /var/log/demo --interval 5s
//	xfilelogd -c xfilelog.yaml run
//	xfilelogd run --count 10 --metrics
//	xfilelogd render --formatter json --level warn --scope req-1 "disk almost full"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xfilelogd",
		Usage:     "xfilelog 示例宿主：周期写日志、配置热重载、格式预览",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
			},
			&cli.StringFlag{
				Name:  "diag-log",
				Usage: "诊断日志文件，按大小轮转",
			},
			&cli.StringFlag{
				Name:  "diag-level",
				Usage: "诊断日志级别",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "diag-format",
				Usage: "诊断日志格式 (text/json)",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "diag-source",
				Usage: "诊断日志附带源码位置",
			},
		},
		Commands: createCommands(),
		// 由 run 统一映射退出码，禁止 urfave/cli 直接调用 os.Exit
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
