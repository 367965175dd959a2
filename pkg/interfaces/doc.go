// Package interfaces 定义 go-connectivity 的公共接口
//
// 引擎只依赖本包中的能力接口，具体实现位于 internal/core 下，
// 一个接口文件对应一个实现目录：
//   - validator.go - 响应校验（internal/core/validator）
//   - transport.go - HTTP 传输（internal/core/transport）
//   - observer.go  - 网络接口观察（internal/core/observer）
//   - eventbus.go  - 事件总线（internal/core/eventbus）
//
// mock 子包提供 gomock 生成的测试替身。
package interfaces

//go:generate mockgen -destination=mock/mock_interfaces.go -package=mock . Transport,InterfaceObserver,ObserverSubscription
