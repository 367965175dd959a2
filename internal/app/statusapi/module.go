package statusapi

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 状态服务依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Engine     *engine.Engine
	EventBus   interfaces.EventBus `optional:"true"`
	Journal    *journal.Journal    `optional:"true"`
	Gatherer   prometheus.Gatherer `optional:"true"`
}

// Module 返回 Fx 模块
//
// 仅在 API.Enabled 时装配。
func Module() fx.Option {
	return fx.Module("statusapi",
		fx.Provide(ProvideServer),
		fx.Invoke(func(*Server) {}),
	)
}

// ProvideServer 创建服务，启动时监听配置的地址
func ProvideServer(lc fx.Lifecycle, p Params) *Server {
	ac := config.DefaultAPIConfig()
	if p.UnifiedCfg != nil {
		ac = p.UnifiedCfg.API
	}

	var opts []Option
	if p.EventBus != nil {
		opts = append(opts, WithEventBus(p.EventBus))
	}
	if p.Journal != nil {
		opts = append(opts, WithHistory(p.Journal))
	}
	if p.Gatherer != nil {
		opts = append(opts, WithGatherer(p.Gatherer))
	}
	s := New(p.Engine, opts...)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return s.Start(ac.Addr)
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
	return s
}
