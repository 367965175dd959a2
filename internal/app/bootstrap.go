// Package app 提供 go-connectivity 应用编排层
//
// app 包负责：
// - fx 模块组装
// - 依赖注入协调
// - 生命周期管理
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/app/statusapi"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
)

var logger = log.Logger("app")

// 生命周期超时
const (
	startTimeout = 30 * time.Second
	stopTimeout  = 30 * time.Second
)

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
// - 校验配置
// - 组装 fx 模块
// - 管理应用生命周期
type Bootstrap struct {
	config    *config.Config
	engineCfg *engine.Config

	observer       interfaces.InterfaceObserver
	transport      interfaces.Transport
	clock          clock.Clock
	registry       *prometheus.Registry
	tracerProvider trace.TracerProvider

	fxApp   *fx.App
	runtime Runtime

	stopMu  sync.Mutex
	stopped bool
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{}
	for _, opt := range opts {
		opt(b)
	}
	if b.config == nil {
		b.config = config.NewConfig()
	}
	return b
}

// optionalServices 按配置启用的服务
type optionalServices struct {
	fx.In

	Journal *journal.Journal  `optional:"true"`
	Server  *statusapi.Server `optional:"true"`
}

// Build 构建并启动 fx 应用，返回运行时（引擎未 Start）
func (b *Bootstrap) Build() (*Runtime, error) {
	if b.fxApp != nil {
		return &b.runtime, nil
	}
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	b.fxApp = fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.Options(b.setupModules()...),
		fx.Populate(&b.runtime.Engine, &b.runtime.EventBus, &b.runtime.Gatherer),
		fx.Invoke(func(p optionalServices) {
			b.runtime.Journal = p.Journal
			b.runtime.Server = p.Server
		}),
	)
	if err := b.fxApp.Err(); err != nil {
		b.fxApp = nil
		return nil, fmt.Errorf("组装模块失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	if err := b.fxApp.Start(ctx); err != nil {
		b.fxApp = nil
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	b.runtime.stop = b.Stop
	logger.Debug("应用已组装",
		"journal", b.runtime.Journal != nil,
		"api", b.runtime.Server != nil)
	return &b.runtime, nil
}

// Stop 停止应用
//
// 只有第一次调用生效。
func (b *Bootstrap) Stop(ctx context.Context) error {
	b.stopMu.Lock()
	defer b.stopMu.Unlock()

	if b.fxApp == nil || b.stopped {
		return nil
	}
	b.stopped = true

	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	return b.fxApp.Stop(stopCtx)
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	return []fx.Option{
		// 配置与外部依赖（Tier 0）
		b.setupConfigModule(),

		// 基础层（Tier 1）
		FoundationModules(),

		// 平台适配层：传输与接口观察者
		b.setupAdapterLayer(),

		// 探测层（Tier 2）
		ProbeModules(),

		// 服务层（Tier 3）：按配置启用
		b.setupServiceLayer(),
	}
}

// setupConfigModule 提供配置及调用方注入的依赖
func (b *Bootstrap) setupConfigModule() fx.Option {
	opts := []fx.Option{fx.Supply(b.config)}

	if b.engineCfg != nil {
		opts = append(opts, fx.Supply(b.engineCfg))
	}
	if b.clock != nil {
		clk := b.clock
		opts = append(opts, fx.Provide(func() clock.Clock { return clk }))
	}
	if b.registry != nil {
		opts = append(opts, fx.Supply(b.registry))
	}
	if b.tracerProvider != nil {
		tp := b.tracerProvider
		opts = append(opts, fx.Provide(func() trace.TracerProvider { return tp }))
	}
	return fx.Options(opts...)
}

// setupAdapterLayer 调用方提供实现时不装配默认模块
func (b *Bootstrap) setupAdapterLayer() fx.Option {
	var opts []fx.Option

	if b.transport != nil {
		t := b.transport
		opts = append(opts, fx.Provide(func() interfaces.Transport { return t }))
	} else {
		opts = append(opts, TransportModule())
	}

	if b.observer != nil {
		obs := b.observer
		opts = append(opts, fx.Provide(func() interfaces.InterfaceObserver { return obs }))
	} else {
		opts = append(opts, ObserverModule())
	}
	return fx.Options(opts...)
}

// setupServiceLayer 状态日志与状态服务
func (b *Bootstrap) setupServiceLayer() fx.Option {
	var modules []fx.Option

	if b.config.Journal.Enabled {
		modules = append(modules, JournalModule())
	}
	if b.config.API.Enabled {
		modules = append(modules, StatusAPIModule())
	}
	return fx.Options(modules...)
}
