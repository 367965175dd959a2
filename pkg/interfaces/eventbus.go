// Package interfaces 定义 go-connectivity 的公共接口
//
// 本文件定义 EventBus 接口，提供事件发布订阅功能。
package interfaces

// EventBus 定义事件总线接口
//
// 事件类型以指针形式传入，例如 bus.Subscribe(new(types.EvtStatusChanged))。
type EventBus interface {
	// Subscribe 订阅指定类型的事件
	Subscribe(eventType any, opts ...SubscriptionOpt) (Subscription, error)

	// Emitter 获取指定事件类型的发射器
	Emitter(eventType any, opts ...EmitterOpt) (Emitter, error)
}

// Subscription 定义事件订阅接口
//
// 总线不会为慢订阅者阻塞：缓冲区满时事件被丢弃并计入 Dropped。
type Subscription interface {
	Out() <-chan any

	// Dropped 因缓冲区满被丢弃的事件数
	Dropped() uint64

	// Close 取消订阅，可重复调用
	Close() error
}

// Emitter 定义事件发射器接口
type Emitter interface {
	// Emit 发射事件
	Emit(event any) error

	// Close 关闭发射器
	Close() error
}

// SubscriptionOpt 订阅选项函数类型
type SubscriptionOpt func(*SubscriptionSettings)

// EmitterOpt 发射器选项函数类型
type EmitterOpt func(*EmitterSettings)

// SubscriptionSettings 订阅设置
type SubscriptionSettings struct {
	// Buffer 通道缓冲大小
	Buffer int

	// Name 订阅者名称，出现在丢弃告警中
	Name string
}

// EmitterSettings 发射器设置
type EmitterSettings struct {
	// Stateful 新订阅者会立即收到最后一个事件（如当前连通性状态）
	Stateful bool
}
