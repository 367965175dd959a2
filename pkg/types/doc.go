// Package types 定义 go-connectivity 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
// 基础类型:
//   - percentage.go - Percentage 百分比（始终限制在 [0,100]）
//   - status.go     - Status 连通性状态
//   - iface.go      - Interface 网络接口类型、InterfaceState
//   - validation.go - ValidationMode 响应校验模式
//
// 探测类型:
//   - probe.go      - ProbeTarget, ProbeOutcome, RoundResult, Verdict
//
// 事件类型:
//   - events.go     - EvtStatusChanged, InterfaceEvent
//
// # 设计约束
//
//   - 值类型优先，可安全复制
//   - 枚举类型均实现 String() 与文本编解码，便于日志与配置
package types
