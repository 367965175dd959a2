// Package transport 实现探测请求的 HTTP 传输
//
// 每个引擎实例持有独立的 HTTPTransport（独立的 http.Client 与连接池），
// 超时、缓存策略、认证头都不会在实例之间共享。
//
// # 请求约定
//
//   - 禁用缓存：Cache-Control: no-cache, Pragma: no-cache
//   - 认证：目标自带的 Authorization 优先，其次是配置的 Authorization，
//     最后是 BearerToken（Authorization: Bearer <token>）
//   - 响应体按 MaxBodySize 截断
//   - 请求经 otelhttp 包装，产生 OpenTelemetry span
//
// 超时由调用方通过 context 控制；Config.Timeout 只是兜底。
package transport
