// Package eventbus 实现进程内事件总线
//
// 提供按类型分发的事件发布/订阅机制，支持：
//   - 多订阅者，每个订阅独立缓冲
//   - 发射器引用计数，无人使用的类型节点自动回收
//   - 有状态模式（Stateful）：新订阅者立即收到最后一个事件
//   - 慢消费者丢弃事件，并限频告警
//
// 连通性引擎通过 Stateful 发射器发布 types.EvtStatusChanged，
// 因此后加入的订阅者（状态 API、日志、持久化）也能立即拿到当前状态。
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.Subscribe(new(types.EvtStatusChanged), eventbus.BufSize(32))
//	defer sub.Close()
//
//	go func() {
//	    for evt := range sub.Out() {
//	        e := evt.(types.EvtStatusChanged)
//	        // 处理事件
//	    }
//	}()
//
//	em, _ := bus.Emitter(new(types.EvtStatusChanged), eventbus.Stateful())
//	defer em.Close()
//	em.Emit(types.EvtStatusChanged{...})
//
// # 并发安全
//
//   - 节点表：sync.RWMutex
//   - 单个节点的订阅列表与最后事件：节点锁
//   - 发射器引用计数：atomic.Int32
//   - 通道关闭：closeOnce 防止重复
package eventbus
