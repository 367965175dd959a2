package engine

import (
	"github.com/dep2p/go-connectivity/internal/core/dispatcher"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ============================================================================
//                              轮次合并
// ============================================================================

// round 一个逻辑检查轮次
//
// 同一时刻最多存在一个进行中的轮次和一个排队的后续轮次。
// 探测尚未完成时到达的触发并入进行中的轮次；探测已完成但仍在通知时
// 到达的触发并入排队轮次，保证通知按轮次发起顺序送达。
type round struct {
	// publish 结论写入共享状态
	publish bool

	// session 发起时的会话，完成时与当前会话不一致则不通知
	session uint64

	// resolved 探测已完成，之后的触发不再并入本轮
	resolved bool

	// waiters CheckOnce 的等待者
	waiters []chan types.Verdict

	reason string
}

// join 并入一个触发
//
// 发布型触发总是把轮次归入最新的会话，Stop 后再 Start 时旧轮次的结论仍会通知。
func (r *round) join(publish bool, session uint64, waiter chan types.Verdict) {
	if publish {
		r.publish = true
		r.session = session
	}
	if waiter != nil {
		r.waiters = append(r.waiters, waiter)
	}
}

// triggerLocked 发起或并入一轮检查
//
// 调用方持有 e.mu。publish 由当前是否处于 Observing 决定。
func (e *Engine) triggerLocked(reason string, waiter chan types.Verdict) {
	publish := e.running

	switch {
	case e.inFlight != nil && !e.inFlight.resolved:
		e.inFlight.join(publish, e.session, waiter)
		e.reporter.TriggerCoalesced("in_flight")
		logger.Debug("触发并入进行中的轮次", "reason", reason)

	case e.queued != nil:
		e.queued.join(publish, e.session, waiter)
		e.reporter.TriggerCoalesced("queued")
		logger.Debug("触发并入排队轮次", "reason", reason)

	case e.inFlight != nil:
		// 探测已完成但通知尚未结束
		r := &round{reason: reason}
		r.join(publish, e.session, waiter)
		e.queued = r

	default:
		r := &round{reason: reason}
		r.join(publish, e.session, waiter)
		e.inFlight = r
		go e.runLoop(r)
	}
}

// runLoop 依次执行进行中的轮次及其后续轮次
func (e *Engine) runLoop(r *round) {
	for r != nil {
		e.mu.Lock()
		req := dispatcher.Request{
			Targets:   append([]types.ProbeTarget(nil), e.targets...),
			Validator: e.validator,
			Timeout:   e.cfg.Timeout,
			Threshold: e.cfg.SuccessThreshold,
		}
		ctx := e.baseCtx
		e.mu.Unlock()

		logger.Debug("开始检查", "reason", r.reason, "targets", len(req.Targets))

		result := e.prober.Run(ctx, req)
		ifaces := e.observer.CurrentState()

		r = e.complete(r, result, ifaces)
	}
}

// complete 处理一轮的结论，返回下一个要执行的轮次
func (e *Engine) complete(r *round, result types.RoundResult, ifaces types.InterfaceState) *round {
	status := types.DeriveStatus(result.Connected(), ifaces.Primary, ifaces.HasPrimary)
	verdict := types.Verdict{
		Status:     status,
		Interfaces: ifaces.Clone(),
		Result:     result,
	}

	e.mu.Lock()
	r.resolved = true

	var (
		evt    types.EvtStatusChanged
		notify bool
	)
	if r.publish {
		e.ifaces = ifaces.Clone()
		e.last = result
		e.hasLast = true

		prev := e.status
		if prev != status {
			e.status = status
			e.reporter.StatusChanged(prev, status)
			logger.Info("连通性状态变更",
				"previous", prev,
				"current", status,
				"successes", result.Successes,
				"total", result.Total)

			if e.running && e.session == r.session {
				notify = true
				evt = types.EvtStatusChanged{
					Previous:   prev,
					Current:    status,
					Interfaces: ifaces.Clone(),
					RoundID:    result.RoundID,
					Successes:  result.Successes,
					Total:      result.Total,
					Timestamp:  e.clock.Now(),
				}
			}
		}
	}
	waiters := r.waiters
	r.waiters = nil
	e.mu.Unlock()

	for _, w := range waiters {
		w <- verdict
	}

	if notify {
		e.notify(evt)
	}

	e.mu.Lock()
	next := e.queued
	e.queued = nil
	e.inFlight = next
	e.mu.Unlock()

	return next
}
