// Package app 提供模块集合清单
//
// modulesets.go 集中维护"哪些模块属于哪一层"，是 Bootstrap 组装的唯一模块来源。
package app

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/app/statusapi"
	"github.com/dep2p/go-connectivity/internal/core/dispatcher"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/internal/core/eventbus"
	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/internal/core/observer"
	"github.com/dep2p/go-connectivity/internal/core/transport"
)

// ============================================================================
//                              固定必选模块集合
// ============================================================================

// FoundationModules 基础层模块组合 (Tier 1)
//
// 事件总线与指标，其他模块都可选依赖它们。
func FoundationModules() fx.Option {
	return fx.Options(
		eventbus.Module(),
		metrics.Module,
	)
}

// ProbeModules 探测层模块组合 (Tier 2)
func ProbeModules() fx.Option {
	return fx.Options(
		dispatcher.Module(),
		engine.Module(),
	)
}

// ============================================================================
//                              可替换模块
// ============================================================================

// TransportModule HTTP 传输
func TransportModule() fx.Option {
	return transport.Module()
}

// ObserverModule 接口观察者
func ObserverModule() fx.Option {
	return observer.Module()
}

// ============================================================================
//                              按配置启用的模块
// ============================================================================

// JournalModule 状态变更日志
func JournalModule() fx.Option {
	return journal.Module()
}

// StatusAPIModule 状态 HTTP 服务
func StatusAPIModule() fx.Option {
	return statusapi.Module()
}
