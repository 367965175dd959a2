package engine

import (
	"time"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// subscriberBuffer Subscribe 返回通道的缓冲大小
const subscriberBuffer = 10

// subscriberSendTimeout 缓冲已满时的最长等待
const subscriberSendTimeout = 100 * time.Millisecond

// ============================================================================
//                              通知
// ============================================================================

// OnConnected 设置变为连通时的回调
//
// 回调在引擎内部的 goroutine 上同步调用，同一时刻最多一个回调在执行。
// 传入 nil 取消回调。
func (e *Engine) OnConnected(fn func(types.EvtStatusChanged)) {
	e.mu.Lock()
	e.onConnected = fn
	e.mu.Unlock()
}

// OnDisconnected 设置变为未连通时的回调
func (e *Engine) OnDisconnected(fn func(types.EvtStatusChanged)) {
	e.mu.Lock()
	e.onDisconnected = fn
	e.mu.Unlock()
}

// Subscribe 订阅状态变更
//
// 返回的通道在 Close 时关闭。订阅者处理过慢时事件会被丢弃。
func (e *Engine) Subscribe() <-chan types.EvtStatusChanged {
	ch := make(chan types.EvtStatusChanged, subscriberBuffer)

	e.subscribersMu.Lock()
	defer e.subscribersMu.Unlock()

	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		close(ch)
		return ch
	}

	e.subscribers = append(e.subscribers, ch)
	return ch
}

// Unsubscribe 取消订阅并关闭通道
func (e *Engine) Unsubscribe(ch <-chan types.EvtStatusChanged) {
	e.subscribersMu.Lock()
	defer e.subscribersMu.Unlock()

	for i, sub := range e.subscribers {
		if sub == ch {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// notify 按顺序投递：回调、事件总线、通道订阅者
func (e *Engine) notify(evt types.EvtStatusChanged) {
	e.mu.Lock()
	var cb func(types.EvtStatusChanged)
	if evt.Connected() {
		cb = e.onConnected
	} else {
		cb = e.onDisconnected
	}
	emitter := e.emitter
	e.mu.Unlock()

	if cb != nil {
		e.safeCallback(cb, evt)
	}

	if emitter != nil {
		if err := emitter.Emit(evt); err != nil {
			logger.Debug("发布状态事件失败", "err", err)
		}
	}

	e.subscribersMu.RLock()
	defer e.subscribersMu.RUnlock()

	for _, ch := range e.subscribers {
		select {
		case ch <- evt:
		default:
			// 缓冲已满，短暂等待
			select {
			case ch <- evt:
			case <-time.After(subscriberSendTimeout):
				logger.Warn("状态订阅者处理过慢，丢弃事件", "current", evt.Current)
			}
		}
	}
}

func (e *Engine) safeCallback(cb func(types.EvtStatusChanged), evt types.EvtStatusChanged) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("状态回调 panic", "panic", r)
		}
	}()
	cb(evt)
}
