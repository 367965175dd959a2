package observer

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"sort"
	"strings"

	"github.com/jackpal/gateway"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// scanner 负责采集接口与主接口地址，测试中可替换
type scanner struct {
	interfaces      func() ([]ifaceInfo, error)
	discoverPrimary func() (net.IP, error)
}

// defaultScanner 基于标准库与 jackpal/gateway 的采集器
func defaultScanner() scanner {
	return scanner{
		interfaces:      stdInterfaces,
		discoverPrimary: gateway.DiscoverInterface,
	}
}

// stdInterfaces 通过 net.Interfaces() 采集
func stdInterfaces() ([]ifaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]ifaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		info := ifaceInfo{
			Name:   iface.Name,
			Index:  iface.Index,
			HWAddr: iface.HardwareAddr.String(),
			Flags:  iface.Flags,
		}
		if addrs, err := iface.Addrs(); err == nil {
			for _, addr := range addrs {
				info.Addresses = append(info.Addresses, addr.String())
			}
		}
		info.Wireless = isWireless(iface.Name)
		out = append(out, info)
	}
	return out, nil
}

// snapshot 采集当前接口状态
func (s scanner) snapshot() (types.InterfaceState, []ifaceInfo) {
	infos, err := s.interfaces()
	if err != nil {
		logger.Debug("获取网络接口失败", "err", err)
		return types.InterfaceState{}, nil
	}

	var primaryIP net.IP
	if s.discoverPrimary != nil {
		if ip, err := s.discoverPrimary(); err == nil {
			primaryIP = ip
		} else {
			logger.Debug("获取默认路由接口失败", "err", err)
		}
	}
	return buildState(infos, primaryIP), infos
}

// buildState 由接口列表和默认路由本地地址计算接口状态
func buildState(infos []ifaceInfo, primaryIP net.IP) types.InterfaceState {
	var state types.InterfaceState
	var fallback *ifaceInfo

	for i := range infos {
		info := infos[i]
		if !info.up() {
			continue
		}
		kind := hintToInterface(classifyName(info.Name, info.Flags, info.Wireless))
		if !state.Has(kind) {
			state.Interfaces = append(state.Interfaces, kind)
		}

		if kind == types.InterfaceLoopback {
			continue
		}
		if primaryIP != nil && !state.HasPrimary && hasIP(info.Addresses, primaryIP) {
			state.Primary = kind
			state.HasPrimary = true
			state.PrimaryName = info.Name
		}
		if fallback == nil && len(info.Addresses) > 0 {
			fallback = &infos[i]
		}
	}

	if !state.HasPrimary && fallback != nil {
		state.Primary = hintToInterface(classifyName(fallback.Name, fallback.Flags, fallback.Wireless))
		state.HasPrimary = true
		state.PrimaryName = fallback.Name
	}
	return state
}

func hintToInterface(h kindHint) types.Interface {
	switch h {
	case hintWiFi:
		return types.InterfaceWiFi
	case hintCellular:
		return types.InterfaceCellular
	case hintEthernet:
		return types.InterfaceEthernet
	case hintLoopback:
		return types.InterfaceLoopback
	default:
		return types.InterfaceOther
	}
}

// hasIP 检查 CIDR 或裸地址列表是否包含 ip
func hasIP(addrs []string, ip net.IP) bool {
	for _, a := range addrs {
		var candidate net.IP
		if parsed, _, err := net.ParseCIDR(a); err == nil {
			candidate = parsed
		} else {
			candidate = net.ParseIP(a)
		}
		if candidate != nil && candidate.Equal(ip) {
			return true
		}
	}
	return false
}

// fingerprint 计算接口集合指纹（忽略回环接口）
func fingerprint(infos []ifaceInfo) string {
	parts := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.loopback() {
			continue
		}
		addrs := append([]string(nil), info.Addresses...)
		sort.Strings(addrs)
		parts = append(parts, info.Name+":"+info.HWAddr+":"+info.Flags.String()+":["+strings.Join(addrs, ",")+"]")
	}
	sort.Strings(parts)

	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:])
}
