package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
)

// Run 启动引擎并阻塞直到收到退出信号或 ctx 取消
//
// 信号处理：
//   - SIGINT / SIGTERM：停止并返回
//   - SIGHUP：触发 Engine.Recheck（等同于应用从后台恢复）
//
// 返回前停止运行时，触发所有模块的 OnStop。
func Run(ctx context.Context, rt *Runtime) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	return run(ctx, rt, signals)
}

func run(ctx context.Context, rt *Runtime, signals <-chan os.Signal) (err error) {
	defer func() {
		err = multierr.Append(err, rt.Stop(context.Background()))
	}()

	if err := rt.Engine.Start(ctx); err != nil {
		return fmt.Errorf("启动引擎失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("上下文已取消，正在退出")
			return nil
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				logger.Info("收到 SIGHUP，重新检查连通性")
				rt.Engine.Recheck()
				continue
			}
			logger.Info("收到退出信号", "signal", sig.String())
			return nil
		}
	}
}
