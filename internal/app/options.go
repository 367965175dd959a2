package app

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// BootstrapOption Bootstrap 配置选项
type BootstrapOption func(*Bootstrap)

// WithConfig 设置统一配置
func WithConfig(cfg *config.Config) BootstrapOption {
	return func(b *Bootstrap) {
		b.config = cfg
	}
}

// WithEngineConfig 直接提供引擎配置，覆盖由统一配置推导的结果
func WithEngineConfig(cfg *engine.Config) BootstrapOption {
	return func(b *Bootstrap) {
		b.engineCfg = cfg
	}
}

// WithObserver 使用自定义接口观察者替代 observer 模块
func WithObserver(obs interfaces.InterfaceObserver) BootstrapOption {
	return func(b *Bootstrap) {
		b.observer = obs
	}
}

// WithTransport 使用自定义传输替代 transport 模块
func WithTransport(t interfaces.Transport) BootstrapOption {
	return func(b *Bootstrap) {
		b.transport = t
	}
}

// WithClock 设置所有组件共用的时钟
func WithClock(c clock.Clock) BootstrapOption {
	return func(b *Bootstrap) {
		b.clock = c
	}
}

// WithRegistry 指标注册到指定的 Registry
func WithRegistry(reg *prometheus.Registry) BootstrapOption {
	return func(b *Bootstrap) {
		b.registry = reg
	}
}

// WithTracerProvider 设置探测轮次使用的 TracerProvider
func WithTracerProvider(tp trace.TracerProvider) BootstrapOption {
	return func(b *Bootstrap) {
		b.tracerProvider = tp
	}
}
