package observer

import (
	"sync"
	"time"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// StaticObserver 固定状态的观察者
//
// 状态只能通过 SetState 修改，变化事件只能通过 NotifyChange 触发。
type StaticObserver struct {
	mu    sync.RWMutex
	state types.InterfaceState
	hub   *hub
}

var _ interfaces.InterfaceObserver = (*StaticObserver)(nil)

// NewStaticObserver 创建固定状态观察者
func NewStaticObserver(state types.InterfaceState) *StaticObserver {
	return &StaticObserver{
		state: state.Clone(),
		hub:   newHub(nil, nil),
	}
}

// NewStaticObserverFor 以单个主接口创建观察者
func NewStaticObserverFor(primary types.Interface) *StaticObserver {
	return NewStaticObserver(types.InterfaceState{
		Interfaces: []types.Interface{primary},
		Primary:    primary,
		HasPrimary: true,
	})
}

// CurrentState 实现 interfaces.InterfaceObserver
func (o *StaticObserver) CurrentState() types.InterfaceState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.Clone()
}

// Subscribe 实现 interfaces.InterfaceObserver
func (o *StaticObserver) Subscribe(onChange func(types.InterfaceEvent)) (interfaces.ObserverSubscription, error) {
	return o.hub.subscribe(onChange)
}

// SetState 替换当前状态（不触发事件）
func (o *StaticObserver) SetState(state types.InterfaceState) {
	o.mu.Lock()
	o.state = state.Clone()
	o.mu.Unlock()
}

// NotifyChange 向所有订阅者发出一个 InterfaceChanged 事件
func (o *StaticObserver) NotifyChange() {
	o.hub.emit(types.InterfaceEvent{Type: types.InterfaceChanged, Timestamp: time.Now()})
}

// Subscribers 当前订阅数
func (o *StaticObserver) Subscribers() int {
	return o.hub.count()
}

// ============================================================================
//                              NoOpObserver
// ============================================================================

// NoOpObserver 报告真实接口状态但从不发出事件
type NoOpObserver struct {
	scan scanner
}

var _ interfaces.InterfaceObserver = (*NoOpObserver)(nil)

// NewNoOpObserver 创建空操作观察者
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{scan: defaultScanner()}
}

// CurrentState 实现 interfaces.InterfaceObserver
func (o *NoOpObserver) CurrentState() types.InterfaceState {
	state, _ := o.scan.snapshot()
	return state
}

// Subscribe 实现 interfaces.InterfaceObserver
func (o *NoOpObserver) Subscribe(onChange func(types.InterfaceEvent)) (interfaces.ObserverSubscription, error) {
	if onChange == nil {
		return nil, ErrNilCallback
	}
	return noopSubscription{}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}
