// Package connectivity 判定设备是否真正具备互联网连通性
//
// 仅有活跃的网络接口并不代表可以访问互联网（例如强制门户、上游故障）。
// 本库并发请求若干已知返回固定内容的地址，按成功比例与阈值得出结论，
// 再结合当前主接口类型（Wi-Fi / 蜂窝 / 以太网）得出状态，
// 并在状态变化时恰好通知一次。
//
// # 快速开始
//
//	import "github.com/dep2p/go-connectivity"
//
//	// 单次检查
//	v, err := connectivity.Check(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(v.Status, v.Connected())
//
//	// 持续观察
//	m, err := connectivity.New(
//	    connectivity.WithPreset(connectivity.PresetDesktop),
//	    connectivity.WithTargets("https://example.com/success.html"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	m.OnConnected(func(evt connectivity.StatusChange) {
//	    fmt.Println("online via", evt.Current)
//	})
//	m.OnDisconnected(func(evt connectivity.StatusChange) {
//	    fmt.Println("offline:", evt.Current)
//	})
//	if err := m.Start(ctx); err != nil {
//	    return err
//	}
//
// # 判定规则
//
//   - 成功：请求完成、状态码 2xx、响应体通过校验
//   - 成功比例 >= 阈值（默认 50%）即为连通，目标列表为空时恒为未连通
//   - 结论确定后取消其余请求
//
// # 状态
//
// 连通时按主接口得到 ConnectedViaWiFi / ConnectedViaCellular /
// ConnectedViaEthernet，主接口未知时为 Connected；未连通时得到对应的
// …WithoutInternet，主接口未知时为 NotConnected。首轮完成前为 Determining。
//
// # 配置
//
// 配置可以来自 config.Config（JSON / YAML 文件）、预设或函数式选项，
// 后出现的选项覆盖前面的设置。
package connectivity
