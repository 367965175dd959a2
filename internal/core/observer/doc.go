// Package observer 提供网络接口观察者
//
// 观察者报告当前可用的接口类型与主接口，并在网络路径发生粗粒度变化
// （接口增删、地址变化、路由变化）时回调。回调只是"值得重新检查"的提示，
// 连通性结论始终由探测得出。
//
// # 实现
//
//   - PollingObserver: 定期对 net.Interfaces() 计算指纹，变化时发出事件（跨平台）
//   - NetlinkObserver: 订阅 rtnetlink 的链路/地址/路由更新（仅 Linux）
//   - StaticObserver: 固定状态，通过 NotifyChange 手动触发（测试与嵌入方使用）
//   - NoOpObserver: 报告真实接口状态，但从不发出事件
//
// # 选择
//
//	obs, err := observer.New(&observer.Config{Framework: observer.FrameworkAuto})
//
// FrameworkAuto 优先使用平台原生实现，不可用时回退到轮询。
//
// # 分类
//
// 接口类型按以下顺序判定：
//  1. 回环标志 → Loopback
//  2. /sys/class/net/<name>/wireless 存在 → WiFi（Linux）
//  3. 名称前缀（wlan/wlp → WiFi，rmnet/wwan/pdp_ip → Cellular，eth/enp/en → Ethernet）
//  4. 其他 → Other
//
// 主接口取默认路由所在接口（jackpal/gateway），失败时取第一个启用的非回环接口。
package observer
