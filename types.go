package connectivity

import (
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════
//
// 调用方只需导入根包即可使用常用类型。

type (
	// Status 连通性状态
	Status = types.Status

	// Interface 网络接口类型
	Interface = types.Interface

	// Verdict 一次检查的结论
	Verdict = types.Verdict

	// RoundResult 一轮探测的汇总
	RoundResult = types.RoundResult

	// StatusChange 状态变更事件
	StatusChange = types.EvtStatusChanged

	// ProbeTarget 探测目标
	ProbeTarget = types.ProbeTarget

	// Percentage 百分比（0-100）
	Percentage = types.Percentage

	// ValidationMode 响应校验模式
	ValidationMode = types.ValidationMode

	// Response 探测响应，供自定义校验器使用
	Response = interfaces.Response

	// ResponseValidator 响应校验器
	ResponseValidator = interfaces.ResponseValidator

	// ResponseValidatorFunc 函数形式的校验器
	ResponseValidatorFunc = interfaces.ResponseValidatorFunc
)

// 状态常量
const (
	StatusDetermining                         = types.StatusDetermining
	StatusNotConnected                        = types.StatusNotConnected
	StatusConnected                           = types.StatusConnected
	StatusConnectedViaWiFi                    = types.StatusConnectedViaWiFi
	StatusConnectedViaWiFiWithoutInternet     = types.StatusConnectedViaWiFiWithoutInternet
	StatusConnectedViaCellular                = types.StatusConnectedViaCellular
	StatusConnectedViaCellularWithoutInternet = types.StatusConnectedViaCellularWithoutInternet
	StatusConnectedViaEthernet                = types.StatusConnectedViaEthernet
	StatusConnectedViaEthernetWithoutInternet = types.StatusConnectedViaEthernetWithoutInternet
)

// 接口类型常量
const (
	InterfaceOther    = types.InterfaceOther
	InterfaceWiFi     = types.InterfaceWiFi
	InterfaceCellular = types.InterfaceCellular
	InterfaceEthernet = types.InterfaceEthernet
	InterfaceLoopback = types.InterfaceLoopback
)

// 校验模式常量
const (
	ValidationContains = types.ValidationContains
	ValidationEquals   = types.ValidationEquals
	ValidationRegex    = types.ValidationRegex
	ValidationCustom   = types.ValidationCustom
)
