package types

import (
	"time"
)

// ============================================================================
//                              状态变更事件
// ============================================================================

// EvtStatusChanged 连通性状态变更事件
//
// 仅在新状态与上一状态不同时发布，同一状态不会重复发布。
type EvtStatusChanged struct {
	// Previous 变更前状态（首次为 StatusDetermining）
	Previous Status `json:"previous"`

	// Current 变更后状态
	Current Status `json:"current"`

	// Interfaces 变更时的接口状态
	Interfaces InterfaceState `json:"-"`

	// RoundID 产生该变更的轮次
	RoundID string `json:"round_id"`

	// Successes/Total 该轮计数
	Successes int `json:"successes"`
	Total     int `json:"total"`

	// Timestamp 事件时间
	Timestamp time.Time `json:"timestamp"`
}

// Connected 变更后是否连通
func (e EvtStatusChanged) Connected() bool {
	return e.Current.IsConnected()
}

// ============================================================================
//                              接口事件
// ============================================================================

// InterfaceEventType 接口事件类型
type InterfaceEventType int

const (
	// InterfaceChanged 通用变化，无法确定具体类型时使用
	InterfaceChanged InterfaceEventType = iota
	// InterfaceUp 接口启用
	InterfaceUp
	// InterfaceDown 接口禁用或移除
	InterfaceDown
	// AddressAdded 地址添加
	AddressAdded
	// AddressRemoved 地址移除
	AddressRemoved
	// RouteChanged 路由变化
	RouteChanged
)

// String 返回事件类型字符串
func (t InterfaceEventType) String() string {
	switch t {
	case InterfaceChanged:
		return "interface_changed"
	case InterfaceUp:
		return "interface_up"
	case InterfaceDown:
		return "interface_down"
	case AddressAdded:
		return "address_added"
	case AddressRemoved:
		return "address_removed"
	case RouteChanged:
		return "route_changed"
	default:
		return "unknown"
	}
}

// InterfaceEvent 网络路径变化提示
//
// 粗粒度提示：只说明"值得重新检查"，不携带连通性结论。
type InterfaceEvent struct {
	Type InterfaceEventType

	// Name 接口名称（如 "wlan0"），可能为空
	Name string

	// Address 相关地址（可选）
	Address string

	Timestamp time.Time
}
