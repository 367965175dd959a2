// Package interfaces 定义 go-connectivity 的公共接口
//
// 本文件定义网络接口观察者接口。
package interfaces

import (
	"github.com/dep2p/go-connectivity/pkg/types"
)

// InterfaceObserver 网络接口观察者
//
// 报告当前接口类型，并在网络路径变化（接口增删、地址或路由变化）时回调。
// 回调只是粗粒度提示，不代表连通性结论。
type InterfaceObserver interface {
	// CurrentState 返回当前接口状态
	CurrentState() types.InterfaceState

	// Subscribe 订阅路径变化
	//
	// 无法建立订阅时返回错误。onChange 可能在任意 goroutine 上调用。
	Subscribe(onChange func(types.InterfaceEvent)) (ObserverSubscription, error)
}

// ObserverSubscription 观察者订阅句柄
type ObserverSubscription interface {
	// Unsubscribe 取消订阅，可重复调用
	Unsubscribe()
}
