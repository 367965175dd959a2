package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	EventBus interfaces.EventBus
	Bus      *Bus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus() Result {
	bus := NewBus()
	return Result{EventBus: bus, Bus: bus}
}

// registerLifecycle 停止时关闭所有订阅，订阅方的 range 循环随之退出
func registerLifecycle(lc fx.Lifecycle, bus *Bus) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bus.Close()
		},
	})
}
