package transport

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 传输依赖参数
type Params struct {
	fx.In

	UnifiedCfg     *config.Config       `optional:"true"`
	TracerProvider trace.TracerProvider `optional:"true"`
}

// Result 传输输出
type Result struct {
	fx.Out

	Transport     interfaces.Transport
	HTTPTransport *HTTPTransport
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("transport",
		fx.Provide(ProvideTransport),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTransport 提供 HTTP 传输
func ProvideTransport(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	cfg.TracerProvider = p.TracerProvider
	t := New(cfg)
	return Result{Transport: t, HTTPTransport: t}
}

func registerLifecycle(lc fx.Lifecycle, t *HTTPTransport) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return t.Close()
		},
	})
}
