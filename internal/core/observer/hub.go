package observer

import (
	"sync"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// hub 管理回调订阅
//
// 第一个订阅者加入时调用 start，最后一个订阅者离开时调用 stop。
// start 返回错误时订阅失败，不保留回调。
type hub struct {
	mu     sync.Mutex
	subs   map[uint64]func(types.InterfaceEvent)
	nextID uint64

	start func() error
	stop  func()
}

func newHub(start func() error, stop func()) *hub {
	return &hub{
		subs:  make(map[uint64]func(types.InterfaceEvent)),
		start: start,
		stop:  stop,
	}
}

func (h *hub) subscribe(onChange func(types.InterfaceEvent)) (interfaces.ObserverSubscription, error) {
	if onChange == nil {
		return nil, ErrNilCallback
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) == 0 && h.start != nil {
		if err := h.start(); err != nil {
			return nil, err
		}
	}

	h.nextID++
	id := h.nextID
	h.subs[id] = onChange
	return &subscription{hub: h, id: id}, nil
}

func (h *hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[id]; !ok {
		return
	}
	delete(h.subs, id)
	if len(h.subs) == 0 && h.stop != nil {
		h.stop()
	}
}

// emit 在锁外调用回调
func (h *hub) emit(ev types.InterfaceEvent) {
	h.mu.Lock()
	callbacks := make([]func(types.InterfaceEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		callbacks = append(callbacks, fn)
	}
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(ev)
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

type subscription struct {
	hub  *hub
	id   uint64
	once sync.Once
}

// Unsubscribe 实现 interfaces.ObserverSubscription
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
