package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/app/statusapi"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Runtime 表示一个已通过 fx 组装完成的运行时
//
// Engine 尚未 Start，由调用方决定何时进入 Observing。
type Runtime struct {
	Engine   *engine.Engine
	EventBus interfaces.EventBus
	Gatherer prometheus.Gatherer

	// Journal 未启用时为 nil
	Journal *journal.Journal

	// Server 未启用时为 nil
	Server *statusapi.Server

	stop func(ctx context.Context) error
}

// Stop 停止运行时（触发 fx 生命周期 OnStop）
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}
