package engine

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/internal/core/dispatcher"
	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 引擎依赖参数
type Params struct {
	fx.In

	// Config 显式配置，优先于 UnifiedCfg
	Config     *Config        `optional:"true"`
	UnifiedCfg *config.Config `optional:"true"`

	Observer   interfaces.InterfaceObserver
	Dispatcher *dispatcher.Dispatcher
	Reporter   metrics.Reporter    `optional:"true"`
	EventBus   interfaces.EventBus `optional:"true"`
	Clock      clock.Clock         `optional:"true"`
}

// Module 返回 Fx 模块
//
// 模块只负责构造和关闭，Start 由调用方决定。
func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(ProvideEngine),
	)
}

// ProvideEngine 提供引擎
func ProvideEngine(lc fx.Lifecycle, p Params) (*Engine, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = ConfigFromUnified(p.UnifiedCfg)
	}

	eng, err := New(cfg, p.Observer, p.Dispatcher,
		WithClock(p.Clock),
		WithReporter(p.Reporter),
		WithEventBus(p.EventBus),
	)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return eng.Close()
		},
	})
	return eng, nil
}
