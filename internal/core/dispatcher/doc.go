// Package dispatcher 实现一轮并发探测
//
// Dispatcher 对每个目标发起一个 HTTP 请求，使用校验器判定每个响应，
// 汇总为 types.RoundResult。
//
// # 提前结束
//
// 当仅凭已成功的探测就满足阈值时，结论已经确定，剩余请求会被取消。
// 取消后才返回的探测记为 Cancelled，既不计成功也不计失败：
//
//	总数 4，阈值 50%
//	  成功 → 1/4 = 25%   继续
//	  成功 → 2/4 = 50%   达到阈值，取消其余 2 个
//	  结果: Successes=2 Failures=0 Cancelled=2 EarlyExit=true
//
// # 并发模型
//
//   - 每轮使用独立的 errgroup，并发上限为目标数
//   - 每个请求有独立的超时 context
//   - 计数仅属于本轮，轮次之间不共享可变状态
//   - 所有请求结束（成功/失败/超时/取消）后才返回结果
package dispatcher
