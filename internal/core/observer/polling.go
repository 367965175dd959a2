package observer

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ============================================================================
//                              PollingObserver
// ============================================================================

// PollingObserver 基于轮询的跨平台观察者
//
// 每个 PollInterval 采集一次接口快照，指纹变化时按接口/地址差异发出事件；
// 无法定位具体差异时发出一个 InterfaceChanged 事件。
type PollingObserver struct {
	interval time.Duration
	clock    clock.Clock
	scan     scanner

	mu       sync.Mutex
	lastFP   string
	lastInfo map[string]ifaceInfo
	cancel   context.CancelFunc

	hub *hub
}

var _ interfaces.InterfaceObserver = (*PollingObserver)(nil)

// NewPollingObserver 创建轮询观察者
func NewPollingObserver(interval time.Duration, clk clock.Clock) *PollingObserver {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clk == nil {
		clk = clock.New()
	}
	o := &PollingObserver{
		interval: interval,
		clock:    clk,
		scan:     defaultScanner(),
	}
	o.hub = newHub(o.start, o.stop)
	return o
}

// CurrentState 实现 interfaces.InterfaceObserver
func (o *PollingObserver) CurrentState() types.InterfaceState {
	state, _ := o.scan.snapshot()
	return state
}

// Subscribe 实现 interfaces.InterfaceObserver
func (o *PollingObserver) Subscribe(onChange func(types.InterfaceEvent)) (interfaces.ObserverSubscription, error) {
	return o.hub.subscribe(onChange)
}

func (o *PollingObserver) start() error {
	infos, err := o.scan.interfaces()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	o.lastFP = fingerprint(infos)
	o.lastInfo = indexByName(infos)
	o.cancel = cancel
	o.mu.Unlock()

	ticker := o.clock.Ticker(o.interval)
	go o.pollLoop(ctx, ticker)

	logger.Debug("轮询观察者已启动", "interval", o.interval)
	return nil
}

func (o *PollingObserver) stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
		logger.Debug("轮询观察者已停止")
	}
}

func (o *PollingObserver) pollLoop(ctx context.Context, ticker *clock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.check()
		}
	}
}

// check 比较快照并发出事件
func (o *PollingObserver) check() {
	infos, err := o.scan.interfaces()
	if err != nil {
		logger.Debug("获取网络接口失败", "err", err)
		return
	}
	current := indexByName(infos)
	fp := fingerprint(infos)

	o.mu.Lock()
	changed := fp != o.lastFP
	previous := o.lastInfo
	o.lastFP = fp
	o.lastInfo = current
	o.mu.Unlock()

	if !changed {
		return
	}

	now := o.clock.Now()
	events := detectChanges(previous, current, now)
	if len(events) == 0 {
		events = []types.InterfaceEvent{{Type: types.InterfaceChanged, Timestamp: now}}
	}

	logger.Debug("检测到网络变化", "events", len(events))
	for _, ev := range events {
		o.hub.emit(ev)
	}
}

func indexByName(infos []ifaceInfo) map[string]ifaceInfo {
	out := make(map[string]ifaceInfo, len(infos))
	for _, info := range infos {
		if info.loopback() {
			continue
		}
		out[info.Name] = info
	}
	return out
}

// detectChanges 比较两次快照
func detectChanges(old, cur map[string]ifaceInfo, now time.Time) []types.InterfaceEvent {
	var events []types.InterfaceEvent

	for name, curInfo := range cur {
		oldInfo, existed := old[name]
		if !existed {
			events = append(events, types.InterfaceEvent{Type: types.InterfaceUp, Name: name, Timestamp: now})
			continue
		}

		wasUp := oldInfo.Flags&net.FlagUp != 0
		isUp := curInfo.Flags&net.FlagUp != 0
		switch {
		case !wasUp && isUp:
			events = append(events, types.InterfaceEvent{Type: types.InterfaceUp, Name: name, Timestamp: now})
		case wasUp && !isUp:
			events = append(events, types.InterfaceEvent{Type: types.InterfaceDown, Name: name, Timestamp: now})
		}

		oldAddrs := toSet(oldInfo.Addresses)
		curAddrs := toSet(curInfo.Addresses)
		for addr := range curAddrs {
			if !oldAddrs[addr] {
				events = append(events, types.InterfaceEvent{Type: types.AddressAdded, Name: name, Address: addr, Timestamp: now})
			}
		}
		for addr := range oldAddrs {
			if !curAddrs[addr] {
				events = append(events, types.InterfaceEvent{Type: types.AddressRemoved, Name: name, Address: addr, Timestamp: now})
			}
		}
	}

	for name := range old {
		if _, ok := cur[name]; !ok {
			events = append(events, types.InterfaceEvent{Type: types.InterfaceDown, Name: name, Timestamp: now})
		}
	}
	return events
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		out[s] = true
	}
	return out
}
