//go:build linux

package observer

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ============================================================================
//                              NetlinkObserver
// ============================================================================

// NetlinkObserver 基于 rtnetlink 的事件驱动观察者
//
// 订阅链路、地址和路由三类更新，任一订阅失败则整体失败。
type NetlinkObserver struct {
	scan scanner

	mu   sync.Mutex
	done chan struct{}

	hub *hub
}

var _ interfaces.InterfaceObserver = (*NetlinkObserver)(nil)

// NewNetlinkObserver 创建 netlink 观察者
func NewNetlinkObserver() *NetlinkObserver {
	o := &NetlinkObserver{
		scan: scanner{
			interfaces:      netlinkInterfaces,
			discoverPrimary: defaultScanner().discoverPrimary,
		},
	}
	o.hub = newHub(o.start, o.stop)
	return o
}

func newNativeObserver() (interfaces.InterfaceObserver, error) {
	// 无权限或内核不支持时 LinkList 会失败
	if _, err := netlink.LinkList(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNativeUnsupported, err)
	}
	return NewNetlinkObserver(), nil
}

// CurrentState 实现 interfaces.InterfaceObserver
func (o *NetlinkObserver) CurrentState() types.InterfaceState {
	state, _ := o.scan.snapshot()
	return state
}

// Subscribe 实现 interfaces.InterfaceObserver
func (o *NetlinkObserver) Subscribe(onChange func(types.InterfaceEvent)) (interfaces.ObserverSubscription, error) {
	return o.hub.subscribe(onChange)
}

func (o *NetlinkObserver) start() error {
	done := make(chan struct{})
	links := make(chan netlink.LinkUpdate, 16)
	addrs := make(chan netlink.AddrUpdate, 16)
	routes := make(chan netlink.RouteUpdate, 16)

	if err := netlink.LinkSubscribe(links, done); err != nil {
		close(done)
		return fmt.Errorf("subscribe link updates: %w", err)
	}
	if err := netlink.AddrSubscribe(addrs, done); err != nil {
		close(done)
		return fmt.Errorf("subscribe address updates: %w", err)
	}
	if err := netlink.RouteSubscribe(routes, done); err != nil {
		close(done)
		return fmt.Errorf("subscribe route updates: %w", err)
	}

	o.mu.Lock()
	o.done = done
	o.mu.Unlock()

	go o.loop(done, links, addrs, routes)

	logger.Debug("netlink 观察者已启动")
	return nil
}

func (o *NetlinkObserver) stop() {
	o.mu.Lock()
	done := o.done
	o.done = nil
	o.mu.Unlock()

	if done != nil {
		close(done)
		logger.Debug("netlink 观察者已停止")
	}
}

func (o *NetlinkObserver) loop(done <-chan struct{}, links <-chan netlink.LinkUpdate, addrs <-chan netlink.AddrUpdate, routes <-chan netlink.RouteUpdate) {
	for {
		select {
		case <-done:
			return

		case u, ok := <-links:
			if !ok {
				links = nil
				continue
			}
			o.hub.emit(linkEvent(u))

		case u, ok := <-addrs:
			if !ok {
				addrs = nil
				continue
			}
			o.hub.emit(addrEvent(u))

		case u, ok := <-routes:
			if !ok {
				routes = nil
				continue
			}
			// 只关心默认路由
			if u.Dst != nil && !isDefaultRoute(u.Dst) {
				continue
			}
			o.hub.emit(types.InterfaceEvent{Type: types.RouteChanged, Timestamp: time.Now()})
		}
	}
}

func linkEvent(u netlink.LinkUpdate) types.InterfaceEvent {
	ev := types.InterfaceEvent{Type: types.InterfaceDown, Timestamp: time.Now()}
	if u.Link == nil || u.Link.Attrs() == nil {
		ev.Type = types.InterfaceChanged
		return ev
	}
	attrs := u.Link.Attrs()
	ev.Name = attrs.Name
	// 删除的链路可能仍带着 UP 标志
	if u.Header.Type != unix.RTM_DELLINK && attrs.Flags&net.FlagUp != 0 {
		ev.Type = types.InterfaceUp
	}
	return ev
}

func addrEvent(u netlink.AddrUpdate) types.InterfaceEvent {
	ev := types.InterfaceEvent{
		Type:      types.AddressRemoved,
		Address:   u.LinkAddress.String(),
		Timestamp: time.Now(),
	}
	if u.NewAddr {
		ev.Type = types.AddressAdded
	}
	if link, err := netlink.LinkByIndex(u.LinkIndex); err == nil {
		ev.Name = link.Attrs().Name
	}
	return ev
}

func isDefaultRoute(dst *net.IPNet) bool {
	ones, _ := dst.Mask.Size()
	return ones == 0
}

// netlinkInterfaces 通过 netlink 采集接口
func netlinkInterfaces() ([]ifaceInfo, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return stdInterfaces()
	}

	out := make([]ifaceInfo, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		if attrs == nil {
			continue
		}
		info := ifaceInfo{
			Name:   attrs.Name,
			Index:  attrs.Index,
			HWAddr: attrs.HardwareAddr.String(),
			Flags:  attrs.Flags,
		}
		if addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL); err == nil {
			for _, a := range addrs {
				if a.IPNet != nil {
					info.Addresses = append(info.Addresses, a.IPNet.String())
				}
			}
		}
		info.Wireless = isWireless(attrs.Name)
		out = append(out, info)
	}
	return out, nil
}
