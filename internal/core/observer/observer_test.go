package observer

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-connectivity/pkg/types"
)

const upBroadcast = net.FlagUp | net.FlagBroadcast

// ============================================================================
//                              分类
// ============================================================================

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name     string
		flags    net.Flags
		wireless bool
		want     types.Interface
	}{
		{"lo", net.FlagUp | net.FlagLoopback, false, types.InterfaceLoopback},
		{"wlan0", upBroadcast, false, types.InterfaceWiFi},
		{"wlp2s0", upBroadcast, false, types.InterfaceWiFi},
		{"eth0", upBroadcast, false, types.InterfaceEthernet},
		{"enp3s0", upBroadcast, false, types.InterfaceEthernet},
		{"en0", upBroadcast, false, types.InterfaceEthernet},
		{"rmnet_data0", upBroadcast, false, types.InterfaceCellular},
		{"wwan0", upBroadcast, false, types.InterfaceCellular},
		{"pdp_ip0", upBroadcast, false, types.InterfaceCellular},
		{"docker0", upBroadcast, false, types.InterfaceOther},
		{"eth1", upBroadcast, true, types.InterfaceWiFi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hintToInterface(classifyName(tt.name, tt.flags, tt.wireless)))
		})
	}
}

func TestIsWireless(t *testing.T) {
	dir := t.TempDir()
	old := sysClassNet
	sysClassNet = dir
	defer func() { sysClassNet = old }()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wlx001", "wireless"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "eth0"), 0o755))

	assert.True(t, isWireless("wlx001"))
	assert.False(t, isWireless("eth0"))
	assert.False(t, isWireless("../wlx001"))
}

// ============================================================================
//                              状态计算
// ============================================================================

func TestBuildState_PrimaryFromGateway(t *testing.T) {
	infos := []ifaceInfo{
		{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addresses: []string{"127.0.0.1/8"}},
		{Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.5/24"}},
		{Name: "wlan0", Flags: upBroadcast, Addresses: []string{"192.168.1.20/24"}},
		{Name: "wwan0", Flags: 0, Addresses: []string{"100.64.0.2/32"}},
	}

	state := buildState(infos, net.ParseIP("192.168.1.20"))

	assert.True(t, state.HasPrimary)
	assert.Equal(t, types.InterfaceWiFi, state.Primary)
	assert.Equal(t, "wlan0", state.PrimaryName)
	assert.Equal(t, []types.Interface{types.InterfaceLoopback, types.InterfaceEthernet, types.InterfaceWiFi}, state.Interfaces)
	assert.False(t, state.Has(types.InterfaceCellular), "未启用的接口不计入")
}

func TestBuildState_Fallback(t *testing.T) {
	infos := []ifaceInfo{
		{Name: "eth0", Flags: upBroadcast},
		{Name: "wlan0", Flags: upBroadcast, Addresses: []string{"192.168.1.20/24"}},
	}

	state := buildState(infos, nil)
	assert.True(t, state.HasPrimary)
	assert.Equal(t, types.InterfaceWiFi, state.Primary, "没有地址的接口不能作为主接口")
}

func TestBuildState_LoopbackOnly(t *testing.T) {
	infos := []ifaceInfo{
		{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addresses: []string{"127.0.0.1/8"}},
	}

	state := buildState(infos, net.ParseIP("127.0.0.1"))
	assert.False(t, state.HasPrimary)
	assert.Equal(t, types.StatusNotConnected, types.DeriveStatus(false, state.Primary, state.HasPrimary))
}

func TestFingerprint(t *testing.T) {
	a := []ifaceInfo{
		{Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.5/24", "fe80::1/64"}},
		{Name: "wlan0", Flags: upBroadcast},
	}
	b := []ifaceInfo{
		{Name: "wlan0", Flags: upBroadcast},
		{Name: "eth0", Flags: upBroadcast, Addresses: []string{"fe80::1/64", "10.0.0.5/24"}},
		{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
	}
	assert.Equal(t, fingerprint(a), fingerprint(b), "顺序与回环接口不影响指纹")

	c := []ifaceInfo{{Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.6/24"}}}
	assert.NotEqual(t, fingerprint(a), fingerprint(c))
}

func TestDetectChanges(t *testing.T) {
	now := time.Now()
	old := map[string]ifaceInfo{
		"eth0":  {Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.5/24"}},
		"wlan0": {Name: "wlan0", Flags: upBroadcast},
	}
	cur := map[string]ifaceInfo{
		"eth0":  {Name: "eth0", Flags: 0, Addresses: []string{"10.0.0.6/24"}},
		"wwan0": {Name: "wwan0", Flags: upBroadcast},
	}

	got := map[types.InterfaceEventType]int{}
	for _, ev := range detectChanges(old, cur, now) {
		got[ev.Type]++
		assert.Equal(t, now, ev.Timestamp)
	}

	// wwan0 新增；eth0 禁用且 wlan0 移除；地址 10.0.0.5 → 10.0.0.6
	assert.Equal(t, 1, got[types.InterfaceUp])
	assert.Equal(t, 2, got[types.InterfaceDown])
	assert.Equal(t, 1, got[types.AddressAdded])
	assert.Equal(t, 1, got[types.AddressRemoved])
}

// ============================================================================
//                              PollingObserver
// ============================================================================

type fakeScan struct {
	mu    sync.Mutex
	infos []ifaceInfo
	err   error
}

func (f *fakeScan) set(infos []ifaceInfo) {
	f.mu.Lock()
	f.infos = infos
	f.mu.Unlock()
}

func (f *fakeScan) scanner() scanner {
	return scanner{
		interfaces: func() ([]ifaceInfo, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			return append([]ifaceInfo(nil), f.infos...), f.err
		},
		discoverPrimary: func() (net.IP, error) { return nil, errors.New("no gateway") },
	}
}

func TestPollingObserver_EmitsOnChange(t *testing.T) {
	mock := clock.NewMock()
	fs := &fakeScan{infos: []ifaceInfo{{Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.5/24"}}}}

	o := NewPollingObserver(time.Second, mock)
	o.scan = fs.scanner()

	events := make(chan types.InterfaceEvent, 16)
	sub, err := o.Subscribe(func(ev types.InterfaceEvent) { events <- ev })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// 无变化不发事件
	mock.Add(time.Second)
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev.Type)
	case <-time.After(50 * time.Millisecond):
	}

	fs.set([]ifaceInfo{
		{Name: "eth0", Flags: upBroadcast, Addresses: []string{"10.0.0.5/24"}},
		{Name: "wlan0", Flags: upBroadcast, Addresses: []string{"192.168.1.20/24"}},
	})

	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		select {
		case ev := <-events:
			return ev.Type == types.InterfaceUp && ev.Name == "wlan0"
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	state := o.CurrentState()
	assert.True(t, state.Has(types.InterfaceWiFi))
	assert.Equal(t, types.InterfaceEthernet, state.Primary)
}

func TestPollingObserver_SubscribeError(t *testing.T) {
	fs := &fakeScan{err: errors.New("netlink: permission denied")}
	o := NewPollingObserver(time.Second, clock.NewMock())
	o.scan = fs.scanner()

	_, err := o.Subscribe(func(types.InterfaceEvent) {})
	assert.Error(t, err)
	assert.Equal(t, 0, o.hub.count())
}

func TestPollingObserver_Unsubscribe(t *testing.T) {
	mock := clock.NewMock()
	fs := &fakeScan{}
	o := NewPollingObserver(time.Second, mock)
	o.scan = fs.scanner()

	sub, err := o.Subscribe(func(types.InterfaceEvent) {})
	require.NoError(t, err)
	sub.Unsubscribe()
	sub.Unsubscribe()

	o.mu.Lock()
	defer o.mu.Unlock()
	assert.Nil(t, o.cancel, "最后一个订阅者离开后轮询停止")
}

// ============================================================================
//                              StaticObserver
// ============================================================================

func TestStaticObserver(t *testing.T) {
	o := NewStaticObserverFor(types.InterfaceCellular)

	state := o.CurrentState()
	assert.Equal(t, types.InterfaceCellular, state.Primary)
	assert.True(t, state.HasPrimary)

	var count int
	var mu sync.Mutex
	sub, err := o.Subscribe(func(ev types.InterfaceEvent) {
		mu.Lock()
		count++
		mu.Unlock()
		assert.Equal(t, types.InterfaceChanged, ev.Type)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, o.Subscribers())

	o.NotifyChange()
	sub.Unsubscribe()
	sub.Unsubscribe()
	o.NotifyChange()

	mu.Lock()
	assert.Equal(t, 1, count)
	mu.Unlock()
	assert.Equal(t, 0, o.Subscribers())

	o.SetState(types.InterfaceState{})
	assert.False(t, o.CurrentState().HasPrimary)
}

func TestStaticObserver_NilCallback(t *testing.T) {
	_, err := NewStaticObserver(types.InterfaceState{}).Subscribe(nil)
	assert.ErrorIs(t, err, ErrNilCallback)
}

// ============================================================================
//                              工厂
// ============================================================================

func TestNew(t *testing.T) {
	o, err := New(&Config{Framework: FrameworkPolling}, clock.NewMock())
	require.NoError(t, err)
	assert.IsType(t, &PollingObserver{}, o)

	o, err = New(&Config{Framework: FrameworkStatic}, nil)
	require.NoError(t, err)
	assert.IsType(t, &StaticObserver{}, o)

	o, err = New(&Config{Framework: FrameworkNone}, nil)
	require.NoError(t, err)
	assert.IsType(t, &NoOpObserver{}, o)

	o, err = New(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, o)

	_, err = New(&Config{Framework: "carrier-pigeon"}, nil)
	assert.ErrorIs(t, err, ErrUnknownFramework)
}

func TestParseFramework(t *testing.T) {
	fw, err := ParseFramework(" Polling ")
	require.NoError(t, err)
	assert.Equal(t, FrameworkPolling, fw)

	fw, err = ParseFramework("")
	require.NoError(t, err)
	assert.Equal(t, FrameworkAuto, fw)
}
