// Package engine 实现连通性判定引擎
//
// Engine 组合接口观察者、探测调度器与响应校验器，维护当前连通性状态，
// 并在状态变化时恰好通知一次。
//
// # 状态
//
//	Idle ──Start──▶ Observing ──Stop──▶ Idle
//
// Observing 状态下，以下事件会触发一轮检查：
//   - Start 本身（立即检查）
//   - 接口变化（上次结论为未连通时延迟 RecheckLatency，否则立即）
//   - 轮询（启用时；PollWhileOfflineOnly 且已连通时跳过）
//   - Recheck（应用恢复，CheckOnResume 启用时）
//
// CheckOnce 在任意状态下都可调用，只有 Observing 时才更新共享状态并通知。
//
// # 轮次合并
//
// 同一时刻最多一轮检查在进行：
//   - 探测尚未全部结束时到达的触发并入当前轮，共享同一结论
//   - 探测已结束但通知尚未完成时到达的触发排入唯一的后续轮，
//     之后的触发都并入该后续轮
//
// 因此通知严格按轮次发起顺序送达。
//
// # 通知
//
// 状态与上一次不同时：
//   - 调用 OnConnected / OnDisconnected 回调
//   - 通过事件总线发布 types.EvtStatusChanged（Stateful）
//   - 发送到 Subscribe() 返回的通道
//
// 状态相同时只更新接口与 LastResult。
//
// # 使用示例
//
//	eng, err := engine.New(engine.NewConfig(), obs, dispatcher.New(transport))
//	if err != nil {
//	    return err
//	}
//	eng.OnConnected(func(evt types.EvtStatusChanged) {
//	    log.Println("online via", evt.Current)
//	})
//	if err := eng.Start(ctx); err != nil {
//	    return err
//	}
//	defer eng.Close()
package engine
