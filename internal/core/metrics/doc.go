// Package metrics 提供监控指标收集
//
// metrics 模块基于 Prometheus client_golang 记录连通性检查的运行指标：
//   - 探测结果（按结果分类：success / failure / cancelled）
//   - 单次探测耗时与整轮耗时
//   - 轮次数（按结论分类）、提前结束次数、合并的触发次数
//   - 当前连通性状态（gauge，取值为 types.Status）
//   - 状态变更次数
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewCollector(metrics.Config{Namespace: "connectivity"}, reg)
//
//	collector.RoundCompleted(result)
//	collector.StatusChanged(types.StatusDetermining, types.StatusConnectedViaWiFi)
//
//	http.Handle("/metrics", metrics.Handler(reg))
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(r metrics.Reporter) { ... }),
//	)
//
// 未启用指标时 Module 提供 NoopReporter，调用方无需判空。
package metrics
