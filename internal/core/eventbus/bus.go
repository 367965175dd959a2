package eventbus

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrClosed 事件总线或发射器已关闭
	ErrClosed = errors.New("eventbus closed")
	// ErrInvalidEventType 无效的事件类型
	ErrInvalidEventType = errors.New("invalid event type")
	// ErrNonPointerType 非指针类型
	ErrNonPointerType = errors.New("subscribe called with non-pointer type")
	// ErrWrongEventType 发射的事件与发射器类型不符
	ErrWrongEventType = errors.New("emitted event does not match emitter type")
)

// DefaultBufferSize 订阅默认缓冲区大小
const DefaultBufferSize = 16

// dropWarnInterval 慢消费者告警最小间隔
const dropWarnInterval = 10 * time.Second

// ============================================================================
//                              Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	mu     sync.RWMutex
	nodes  map[reflect.Type]*node
	closed bool
}

var _ interfaces.EventBus = (*Bus)(nil)

// node 单个事件类型的分发节点
type node struct {
	lk        sync.Mutex
	typ       reflect.Type
	sinks     []*Subscription
	nEmitters atomic.Int32
	keepLast  bool
	last      any

	dropCount atomic.Int64
	dropWarn  rate.Sometimes
}

// NewBus 创建新的事件总线
func NewBus() *Bus {
	return &Bus{
		nodes: make(map[reflect.Type]*node),
	}
}

// Subscribe 订阅事件
//
// eventType 必须是指针，如 new(types.EvtStatusChanged)。
func (b *Bus) Subscribe(eventType any, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	elemType, err := elemTypeOf(eventType)
	if err != nil {
		return nil, err
	}

	settings := &interfaces.SubscriptionSettings{Buffer: DefaultBufferSize}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.Buffer < 0 {
		settings.Buffer = 0
	}

	sub := &Subscription{
		bus:  b,
		typ:  elemType,
		name: settings.Name,
		out:  make(chan any, settings.Buffer),
	}

	if err := b.withNode(elemType, func(n *node) {
		n.sinks = append(n.sinks, sub)

		if n.keepLast && n.last != nil {
			select {
			case sub.out <- n.last:
			default:
			}
		}
	}); err != nil {
		return nil, err
	}

	return sub, nil
}

// Emitter 获取发射器
func (b *Bus) Emitter(eventType any, opts ...interfaces.EmitterOpt) (interfaces.Emitter, error) {
	elemType, err := elemTypeOf(eventType)
	if err != nil {
		return nil, err
	}

	settings := &interfaces.EmitterSettings{}
	for _, opt := range opts {
		opt(settings)
	}

	var n *node
	if err := b.withNode(elemType, func(nd *node) {
		n = nd
		n.nEmitters.Add(1)
		if settings.Stateful {
			n.keepLast = true
		}
	}); err != nil {
		return nil, err
	}

	return &Emitter{bus: b, node: n, typ: elemType}, nil
}

// Close 关闭总线并关闭所有订阅，可重复调用
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	var subs []*Subscription
	for _, n := range b.nodes {
		n.lk.Lock()
		subs = append(subs, n.sinks...)
		n.lk.Unlock()
	}
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}
	return nil
}

// ============================================================================
//                              内部方法
// ============================================================================

func elemTypeOf(eventType any) (reflect.Type, error) {
	if eventType == nil {
		return nil, ErrInvalidEventType
	}
	typ := reflect.TypeOf(eventType)
	if typ.Kind() != reflect.Ptr {
		return nil, ErrNonPointerType
	}
	return typ.Elem(), nil
}

// withNode 在节点锁内执行 cb，节点不存在时创建
func (b *Bus) withNode(typ reflect.Type, cb func(*node)) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}

	n, ok := b.nodes[typ]
	if !ok {
		n = &node{
			typ:      typ,
			dropWarn: rate.Sometimes{First: 1, Interval: dropWarnInterval},
		}
		b.nodes[typ] = n
	}

	n.lk.Lock()
	b.mu.Unlock()

	cb(n)
	n.lk.Unlock()
	return nil
}

// tryDropNode 没有订阅者和发射器时删除节点
func (b *Bus) tryDropNode(typ reflect.Type) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes[typ]
	if !ok {
		return
	}

	n.lk.Lock()
	idle := len(n.sinks) == 0 && n.nEmitters.Load() == 0
	n.lk.Unlock()

	if idle {
		delete(b.nodes, typ)
	}
}

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	n, ok := b.nodes[sub.typ]
	if !ok {
		b.mu.Unlock()
		return
	}

	n.lk.Lock()
	b.mu.Unlock()

	for i, s := range n.sinks {
		if s == sub {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			break
		}
	}
	shouldDrop := len(n.sinks) == 0 && n.nEmitters.Load() == 0
	n.lk.Unlock()

	if shouldDrop {
		b.tryDropNode(sub.typ)
	}
}

// nodeCount 当前节点数（测试用）
func (b *Bus) nodeCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.nodes)
}

// emit 发射事件到所有订阅者，缓冲区满时丢弃
func (n *node) emit(event any) {
	n.lk.Lock()
	defer n.lk.Unlock()

	if n.keepLast {
		n.last = event
	}

	for _, sub := range n.sinks {
		select {
		case sub.out <- event:
		default:
			sub.dropped.Add(1)
			dropped := n.dropCount.Add(1)
			n.dropWarn.Do(func() {
				logger.Warn("慢消费者检测",
					"subscriber", sub.name,
					"dropped", dropped,
					"type", n.typ,
					"reason", "subscriber buffer full")
			})
		}
	}
}
