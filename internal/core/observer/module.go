package observer

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 观察者依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Module 返回 Fx 模块
//
// 调用方可以用 fx.Decorate 或 fx.Replace 提供自己的 InterfaceObserver。
func Module() fx.Option {
	return fx.Module("observer",
		fx.Provide(ProvideObserver),
	)
}

// ProvideObserver 按统一配置提供观察者
func ProvideObserver(p Params) (interfaces.InterfaceObserver, error) {
	return New(ConfigFromUnified(p.UnifiedCfg), p.Clock)
}
