package dispatcher

import (
	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 调度器依赖参数
type Params struct {
	fx.In

	Transport      interfaces.Transport
	Reporter       metrics.Reporter     `optional:"true"`
	Clock          clock.Clock          `optional:"true"`
	TracerProvider trace.TracerProvider `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("dispatcher",
		fx.Provide(ProvideDispatcher),
	)
}

// ProvideDispatcher 提供调度器
func ProvideDispatcher(p Params) *Dispatcher {
	return New(p.Transport,
		WithReporter(p.Reporter),
		WithClock(p.Clock),
		WithTracerProvider(p.TracerProvider),
	)
}
