package types

import (
	"fmt"
)

// ============================================================================
//                              Status - 连通性状态
// ============================================================================

// Status 连通性状态
//
// 任意时刻只有一个值成立。初始为 StatusDetermining，
// 仅在一轮探测完成后由引擎更新。
type Status int

const (
	// StatusDetermining 尚未完成首轮探测
	StatusDetermining Status = iota
	// StatusNotConnected 无法确定接口且无互联网
	StatusNotConnected
	// StatusConnected 已连通（接口类型未知）
	StatusConnected
	// StatusConnectedViaWiFi 经 Wi-Fi 连通
	StatusConnectedViaWiFi
	// StatusConnectedViaWiFiWithoutInternet Wi-Fi 在线但无互联网
	StatusConnectedViaWiFiWithoutInternet
	// StatusConnectedViaCellular 经蜂窝网络连通
	StatusConnectedViaCellular
	// StatusConnectedViaCellularWithoutInternet 蜂窝在线但无互联网
	StatusConnectedViaCellularWithoutInternet
	// StatusConnectedViaEthernet 经以太网连通
	StatusConnectedViaEthernet
	// StatusConnectedViaEthernetWithoutInternet 以太网在线但无互联网
	StatusConnectedViaEthernetWithoutInternet
)

var statusNames = map[Status]string{
	StatusDetermining:                         "determining",
	StatusNotConnected:                        "not_connected",
	StatusConnected:                           "connected",
	StatusConnectedViaWiFi:                    "connected_via_wifi",
	StatusConnectedViaWiFiWithoutInternet:     "connected_via_wifi_without_internet",
	StatusConnectedViaCellular:                "connected_via_cellular",
	StatusConnectedViaCellularWithoutInternet: "connected_via_cellular_without_internet",
	StatusConnectedViaEthernet:                "connected_via_ethernet",
	StatusConnectedViaEthernetWithoutInternet: "connected_via_ethernet_without_internet",
}

// String 返回状态字符串
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText 实现 encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// IsConnected 是否具备互联网连通性
func (s Status) IsConnected() bool {
	switch s {
	case StatusConnected, StatusConnectedViaWiFi, StatusConnectedViaCellular, StatusConnectedViaEthernet:
		return true
	default:
		return false
	}
}

// IsDisconnected 是否已判定为无互联网
//
// StatusDetermining 既不是连通也不是断开。
func (s Status) IsDisconnected() bool {
	return s != StatusDetermining && !s.IsConnected()
}

// Interface 返回状态对应的接口类型
//
// 未绑定接口的状态返回 (InterfaceOther, false)。
func (s Status) Interface() (Interface, bool) {
	switch s {
	case StatusConnectedViaWiFi, StatusConnectedViaWiFiWithoutInternet:
		return InterfaceWiFi, true
	case StatusConnectedViaCellular, StatusConnectedViaCellularWithoutInternet:
		return InterfaceCellular, true
	case StatusConnectedViaEthernet, StatusConnectedViaEthernetWithoutInternet:
		return InterfaceEthernet, true
	default:
		return InterfaceOther, false
	}
}

// DeriveStatus 由探测结论与主接口推导状态
//
//	connected + wifi      → ConnectedViaWiFi
//	!connected + wifi     → ConnectedViaWiFiWithoutInternet
//	connected + 无法确定  → Connected
//	!connected + 无法确定 → NotConnected
func DeriveStatus(connected bool, primary Interface, hasPrimary bool) Status {
	if hasPrimary {
		switch primary {
		case InterfaceWiFi:
			if connected {
				return StatusConnectedViaWiFi
			}
			return StatusConnectedViaWiFiWithoutInternet
		case InterfaceCellular:
			if connected {
				return StatusConnectedViaCellular
			}
			return StatusConnectedViaCellularWithoutInternet
		case InterfaceEthernet:
			if connected {
				return StatusConnectedViaEthernet
			}
			return StatusConnectedViaEthernetWithoutInternet
		}
	}
	if connected {
		return StatusConnected
	}
	return StatusNotConnected
}
