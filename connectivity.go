package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-connectivity/internal/app"
	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "go-connectivity " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// closeTimeout Close 等待各模块停止的上限
const closeTimeout = 10 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              Monitor
// ════════════════════════════════════════════════════════════════════════════

// Monitor 连通性监视器
//
// New 之后处于 Idle：可以随时 CheckOnce，Start 之后才响应接口变化、
// 轮询与 Recheck，并在状态变化时通知。
type Monitor struct {
	rt     *app.Runtime
	engine *engine.Engine

	closeOnce sync.Once
	closeErr  error
}

// New 组装监视器（不启动）
func New(opts ...Option) (*Monitor, error) {
	o := newOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	bootOpts := []app.BootstrapOption{app.WithConfig(o.cfg)}

	// 自定义校验器无法放进统一配置，直接提供引擎配置
	if o.validator != nil {
		if err := o.cfg.Validate(); err != nil {
			return nil, err
		}
		ec := engine.ConfigFromUnified(o.cfg)
		ec.Validator = o.validator
		ec.ValidationMode = types.ValidationCustom
		bootOpts = append(bootOpts, app.WithEngineConfig(ec))
	}
	if o.observer != nil {
		bootOpts = append(bootOpts, app.WithObserver(o.observer))
	}
	if o.transport != nil {
		bootOpts = append(bootOpts, app.WithTransport(o.transport))
	}
	if o.clock != nil {
		bootOpts = append(bootOpts, app.WithClock(o.clock))
	}
	if o.registry != nil {
		bootOpts = append(bootOpts, app.WithRegistry(o.registry))
	}
	if o.tracerProvider != nil {
		bootOpts = append(bootOpts, app.WithTracerProvider(o.tracerProvider))
	}

	rt, err := app.NewBootstrap(bootOpts...).Build()
	if err != nil {
		return nil, err
	}
	return &Monitor{rt: rt, engine: rt.Engine}, nil
}

// Check 使用给定选项执行一次检查
//
// 等价于 New + CheckOnce + Close。
func Check(ctx context.Context, opts ...Option) (Verdict, error) {
	m, err := New(opts...)
	if err != nil {
		return Verdict{}, err
	}
	defer m.Close()

	return m.CheckOnce(ctx)
}

// ────────────────────────────────────────────────────────────────────────────
// 生命周期
// ────────────────────────────────────────────────────────────────────────────

// Start 开始观察并立即检查一次
func (m *Monitor) Start(ctx context.Context) error {
	return m.engine.Start(ctx)
}

// Stop 回到 Idle，保留最后一次结论
func (m *Monitor) Stop() error {
	return m.engine.Stop()
}

// Run 启动并阻塞，直到 ctx 取消或收到 SIGINT/SIGTERM
//
// SIGHUP 触发 Recheck。返回前关闭 Monitor。
func (m *Monitor) Run(ctx context.Context) error {
	return app.Run(ctx, m.rt)
}

// Close 停止所有模块并释放资源，可重复调用
func (m *Monitor) Close() error {
	m.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		m.closeErr = m.rt.Stop(ctx)
	})
	return m.closeErr
}

// IsRunning 是否处于观察状态
func (m *Monitor) IsRunning() bool {
	return m.engine.IsRunning()
}

// ────────────────────────────────────────────────────────────────────────────
// 检查
// ────────────────────────────────────────────────────────────────────────────

// CheckOnce 执行一次检查并返回结论
func (m *Monitor) CheckOnce(ctx context.Context) (Verdict, error) {
	return m.engine.CheckOnce(ctx)
}

// CheckOnceAsync 在后台检查，完成后调用 done
func (m *Monitor) CheckOnceAsync(done func(Verdict, error)) {
	m.engine.CheckOnceAsync(done)
}

// Recheck 外部恢复触发（如应用回到前台）
func (m *Monitor) Recheck() {
	m.engine.Recheck()
}

// ────────────────────────────────────────────────────────────────────────────
// 状态
// ────────────────────────────────────────────────────────────────────────────

// Status 当前状态
func (m *Monitor) Status() Status {
	return m.engine.Status()
}

// IsConnected 当前是否连通
func (m *Monitor) IsConnected() bool {
	return m.engine.IsConnected()
}

// CurrentInterface 最近一轮的主接口
func (m *Monitor) CurrentInterface() (Interface, bool) {
	return m.engine.CurrentInterface()
}

// AvailableInterfaces 最近一轮的可用接口
func (m *Monitor) AvailableInterfaces() []Interface {
	return m.engine.AvailableInterfaces()
}

// LastResult 最近一轮的探测汇总
func (m *Monitor) LastResult() (RoundResult, bool) {
	return m.engine.LastResult()
}

// Targets 实际探测的目标
func (m *Monitor) Targets() []ProbeTarget {
	return m.engine.Targets()
}

// ────────────────────────────────────────────────────────────────────────────
// 通知
// ────────────────────────────────────────────────────────────────────────────

// OnConnected 设置变为连通时的回调
func (m *Monitor) OnConnected(fn func(StatusChange)) {
	m.engine.OnConnected(fn)
}

// OnDisconnected 设置变为未连通时的回调
func (m *Monitor) OnDisconnected(fn func(StatusChange)) {
	m.engine.OnDisconnected(fn)
}

// Subscribe 以通道接收状态变更，Close 时通道关闭
func (m *Monitor) Subscribe() <-chan StatusChange {
	return m.engine.Subscribe()
}

// Unsubscribe 取消订阅
func (m *Monitor) Unsubscribe(ch <-chan StatusChange) {
	m.engine.Unsubscribe(ch)
}

// ────────────────────────────────────────────────────────────────────────────
// 运行时配置
// ────────────────────────────────────────────────────────────────────────────

// SetTargets 替换探测地址，从下一轮生效
func (m *Monitor) SetTargets(urls ...string) {
	m.engine.SetTargetURLs(urls...)
}

// SetHTTPSOnly 设置是否只探测 HTTPS 目标
func (m *Monitor) SetHTTPSOnly(v bool) {
	m.engine.SetHTTPSOnly(v)
}

// SetSuccessThreshold 设置成功阈值
func (m *Monitor) SetSuccessThreshold(percent float64) {
	m.engine.SetSuccessThreshold(types.NewPercentage(percent))
}

// SetValidator 使用自定义校验器
func (m *Monitor) SetValidator(v ResponseValidator) error {
	return m.engine.SetValidator(v)
}

// SetPolling 开启或关闭轮询
func (m *Monitor) SetPolling(enabled bool, interval time.Duration) {
	if interval > 0 {
		m.engine.SetPollInterval(interval)
	}
	m.engine.SetPolling(enabled)
}

// ────────────────────────────────────────────────────────────────────────────
// 可观测性
// ────────────────────────────────────────────────────────────────────────────

// Metrics 指标 Gatherer
func (m *Monitor) Metrics() prometheus.Gatherer {
	return m.rt.Gatherer
}

// StatusAPIAddr 状态服务的实际监听地址，未启用时为空
func (m *Monitor) StatusAPIAddr() string {
	if m.rt.Server == nil {
		return ""
	}
	return m.rt.Server.Addr()
}

// Transition 一条状态变更记录
type Transition = journal.Entry

// Transitions 最近 n 条状态变更，未启用 journal 时返回 nil
func (m *Monitor) Transitions(ctx context.Context, n int) ([]Transition, error) {
	if m.rt.Journal == nil {
		return nil, nil
	}
	return m.rt.Journal.Recent(ctx, n)
}
