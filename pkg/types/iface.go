package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              Interface - 网络接口类型
// ============================================================================

// Interface 网络接口类型
type Interface int

const (
	// InterfaceOther 其他/无法识别的接口
	InterfaceOther Interface = iota
	// InterfaceWiFi 无线局域网
	InterfaceWiFi
	// InterfaceCellular 蜂窝网络
	InterfaceCellular
	// InterfaceEthernet 有线以太网
	InterfaceEthernet
	// InterfaceLoopback 回环接口
	InterfaceLoopback
)

// String 返回接口类型字符串
func (i Interface) String() string {
	switch i {
	case InterfaceWiFi:
		return "wifi"
	case InterfaceCellular:
		return "cellular"
	case InterfaceEthernet:
		return "ethernet"
	case InterfaceLoopback:
		return "loopback"
	default:
		return "other"
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (i Interface) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (i *Interface) UnmarshalText(text []byte) error {
	v, err := ParseInterface(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// ParseInterface 解析接口类型名称
func ParseInterface(s string) (Interface, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wifi", "wi-fi", "wlan":
		return InterfaceWiFi, nil
	case "cellular", "wwan":
		return InterfaceCellular, nil
	case "ethernet", "wired":
		return InterfaceEthernet, nil
	case "loopback":
		return InterfaceLoopback, nil
	case "other", "":
		return InterfaceOther, nil
	default:
		return InterfaceOther, fmt.Errorf("unknown interface type %q", s)
	}
}

// ============================================================================
//                              InterfaceState - 接口状态
// ============================================================================

// InterfaceState 当前接口状态快照
type InterfaceState struct {
	// Interfaces 当前可用的接口类型（去重，按发现顺序）
	Interfaces []Interface

	// Primary 当前主接口（默认路由所在接口）
	// HasPrimary 为 false 时无意义
	Primary Interface

	// HasPrimary 是否确定了主接口
	HasPrimary bool

	// PrimaryName 主接口名称（如 "wlan0"），仅用于诊断
	PrimaryName string
}

// Has 检查是否包含指定接口类型
func (s InterfaceState) Has(i Interface) bool {
	for _, v := range s.Interfaces {
		if v == i {
			return true
		}
	}
	return false
}

// Clone 返回深拷贝
func (s InterfaceState) Clone() InterfaceState {
	out := s
	out.Interfaces = append([]Interface(nil), s.Interfaces...)
	return out
}
