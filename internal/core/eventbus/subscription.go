package eventbus

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// ============================================================================
//                              Subscription 实现
// ============================================================================

// Subscription 订阅
type Subscription struct {
	bus       *Bus
	typ       reflect.Type
	name      string
	out       chan any
	dropped   atomic.Uint64
	closeOnce sync.Once
}

var _ interfaces.Subscription = (*Subscription)(nil)

// Out 返回事件通道，Close 后通道被关闭
func (s *Subscription) Out() <-chan any {
	return s.out
}

// Dropped 因缓冲区满被丢弃的事件数
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close 取消订阅
//
// 先从总线移除再关闭通道，移除后不会再有发送。可重复调用。
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.bus.removeSub(s)
		close(s.out)
	})
	return nil
}

// ============================================================================
//                              Emitter 实现
// ============================================================================

// Emitter 事件发射器
type Emitter struct {
	bus       *Bus
	node      *node
	typ       reflect.Type
	closed    atomic.Bool
	closeOnce sync.Once
}

var _ interfaces.Emitter = (*Emitter)(nil)

// Emit 发射事件
//
// event 的动态类型必须与创建发射器时的类型一致。
func (e *Emitter) Emit(event any) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if event == nil || reflect.TypeOf(event) != e.typ {
		return ErrWrongEventType
	}

	e.node.emit(event)
	return nil
}

// Close 关闭发射器，引用计数归零时尝试回收节点
func (e *Emitter) Close() error {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		if e.node.nEmitters.Add(-1) == 0 {
			e.bus.tryDropNode(e.typ)
		}
	})
	return nil
}
