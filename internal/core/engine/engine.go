package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"

	"github.com/dep2p/go-connectivity/internal/core/dispatcher"
	"github.com/dep2p/go-connectivity/internal/core/eventbus"
	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("core/engine")

// Prober 执行一轮探测
//
// *dispatcher.Dispatcher 实现该接口。
type Prober interface {
	Run(ctx context.Context, req dispatcher.Request) types.RoundResult
}

var _ Prober = (*dispatcher.Dispatcher)(nil)

// 触发原因
const (
	reasonStart     = "start"
	reasonInterface = "interface_change"
	reasonPoll      = "poll"
	reasonResume    = "resume"
	reasonManual    = "check_once"
)

// ============================================================================
//                              Engine
// ============================================================================

// Engine 连通性判定引擎
type Engine struct {
	mu sync.Mutex

	cfg       *Config
	validator interfaces.ResponseValidator
	targets   []types.ProbeTarget

	observer interfaces.InterfaceObserver
	prober   Prober
	clock    clock.Clock
	reporter metrics.Reporter
	emitter  interfaces.Emitter

	// baseCtx 探测使用的 context，Close 时取消
	baseCtx    context.Context
	baseCancel context.CancelFunc

	// 生命周期
	running bool
	closed  bool
	session uint64
	sub     interfaces.ObserverSubscription

	// 定时器
	pollTicker   *clock.Ticker
	pollStop     chan struct{}
	latencyTimer *clock.Timer

	// 共享状态
	status  types.Status
	ifaces  types.InterfaceState
	last    types.RoundResult
	hasLast bool

	// 轮次
	inFlight *round
	queued   *round

	// 通知
	onConnected    func(types.EvtStatusChanged)
	onDisconnected func(types.EvtStatusChanged)
	subscribers    []chan types.EvtStatusChanged
	subscribersMu  sync.RWMutex
}

// Option 引擎选项
type Option func(*Engine) error

// WithClock 设置时钟（测试使用 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(e *Engine) error {
		if c != nil {
			e.clock = c
		}
		return nil
	}
}

// WithReporter 设置指标上报
func WithReporter(r metrics.Reporter) Option {
	return func(e *Engine) error {
		if r != nil {
			e.reporter = r
		}
		return nil
	}
}

// WithEventBus 在事件总线上发布 types.EvtStatusChanged
func WithEventBus(bus interfaces.EventBus) Option {
	return func(e *Engine) error {
		if bus == nil {
			return nil
		}
		em, err := bus.Emitter(new(types.EvtStatusChanged), eventbus.Stateful())
		if err != nil {
			return fmt.Errorf("create status emitter: %w", err)
		}
		e.emitter = em
		return nil
	}
}

// New 创建引擎，初始状态为 Idle / StatusDetermining
func New(cfg *Config, observer interfaces.InterfaceObserver, prober Prober, opts ...Option) (*Engine, error) {
	if observer == nil {
		return nil, ErrNilObserver
	}
	if prober == nil {
		return nil, ErrNilProber
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := cfg.buildValidator()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		cfg:        cfg,
		validator:  v,
		targets:    cfg.effectiveTargets(),
		observer:   observer,
		prober:     prober,
		clock:      clock.New(),
		reporter:   metrics.NoopReporter{},
		baseCtx:    ctx,
		baseCancel: cancel,
		status:     types.StatusDetermining,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			cancel()
			return nil, err
		}
	}
	return e, nil
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 进入 Observing 状态并立即发起一轮检查
//
// 订阅接口变化失败时返回 ErrObserverSubscribe，引擎保持 Idle。
// 已在 Observing 时调用无效果。
func (e *Engine) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	sub, err := e.observer.Subscribe(e.onInterfaceEvent)
	if err != nil {
		logger.Warn("订阅接口变化失败", "err", err)
		return fmt.Errorf("%w: %w", ErrObserverSubscribe, err)
	}

	e.mu.Lock()
	if e.running || e.closed {
		e.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	e.running = true
	e.session++
	e.sub = sub
	e.armPollLocked()
	e.triggerLocked(reasonStart, nil)
	targets, polling := len(e.targets), e.cfg.PollingEnabled
	e.mu.Unlock()

	logger.Info("连通性引擎已启动",
		"targets", targets,
		"polling", polling)
	return nil
}

// Stop 回到 Idle 状态
//
// 取消接口订阅并停止所有定时器。进行中的一轮仍会更新状态，但不再发出通知。
// 可重复调用。
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	sub := e.sub
	e.sub = nil
	e.disarmPollLocked()
	e.cancelLatencyLocked()
	e.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}

	logger.Info("连通性引擎已停止")
	return nil
}

// Close 停止引擎并释放资源
//
// 取消进行中的探测，关闭事件发射器和所有 Subscribe 通道。可重复调用。
func (e *Engine) Close() error {
	err := e.Stop()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return err
	}
	e.closed = true
	e.baseCancel()
	emitter := e.emitter
	e.mu.Unlock()

	if emitter != nil {
		err = multierr.Append(err, emitter.Close())
	}

	e.subscribersMu.Lock()
	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
	e.subscribersMu.Unlock()

	return err
}

// IsRunning 是否处于 Observing 状态
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// ============================================================================
//                              检查
// ============================================================================

// CheckOnce 执行一次检查并返回结论
//
// 任意状态下都可调用。Observing 时结论会更新共享状态并可能发出通知；
// 已有一轮在进行时并入该轮。ctx 取消只影响等待，不取消共享的探测。
func (e *Engine) CheckOnce(ctx context.Context) (types.Verdict, error) {
	waiter := make(chan types.Verdict, 1)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return types.Verdict{}, ErrClosed
	}
	e.triggerLocked(reasonManual, waiter)
	e.mu.Unlock()

	select {
	case v := <-waiter:
		return v, nil
	case <-ctx.Done():
		return types.Verdict{}, ctx.Err()
	}
}

// CheckOnceAsync 在后台执行一次检查，完成后恰好调用一次 done
func (e *Engine) CheckOnceAsync(done func(types.Verdict, error)) {
	go func() {
		done(e.CheckOnce(context.Background()))
	}()
}

// Recheck 外部恢复触发（例如应用从后台恢复）
//
// 仅在 Observing 且 CheckOnResume 启用时发起检查。
func (e *Engine) Recheck() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || !e.cfg.CheckOnResume {
		return
	}
	e.triggerLocked(reasonResume, nil)
}

// ============================================================================
//                              触发源
// ============================================================================

// onInterfaceEvent 接口变化回调
func (e *Engine) onInterfaceEvent(ev types.InterfaceEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	logger.Debug("接口变化", "type", ev.Type, "name", ev.Name)

	latency := e.cfg.RecheckLatency
	if !e.status.IsDisconnected() || latency <= 0 {
		e.triggerLocked(reasonInterface, nil)
		return
	}

	// 已有延迟检查在等待时，本次事件被吸收
	if e.latencyTimer != nil {
		return
	}
	session := e.session
	e.latencyTimer = e.clock.AfterFunc(latency, func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		e.latencyTimer = nil
		if !e.running || e.session != session {
			return
		}
		e.triggerLocked(reasonInterface, nil)
	})
}

func (e *Engine) cancelLatencyLocked() {
	if e.latencyTimer != nil {
		e.latencyTimer.Stop()
		e.latencyTimer = nil
	}
}

// armPollLocked 按配置启动轮询
func (e *Engine) armPollLocked() {
	e.disarmPollLocked()
	if !e.running || !e.cfg.PollingEnabled {
		return
	}

	ticker := e.clock.Ticker(e.cfg.PollInterval)
	stop := make(chan struct{})
	e.pollTicker = ticker
	e.pollStop = stop

	go e.pollLoop(ticker, stop)
}

func (e *Engine) disarmPollLocked() {
	if e.pollStop == nil {
		return
	}
	close(e.pollStop)
	e.pollTicker.Stop()
	e.pollStop = nil
	e.pollTicker = nil
}

func (e *Engine) pollLoop(ticker *clock.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.onPollTick(stop)
		}
	}
}

func (e *Engine) onPollTick(stop <-chan struct{}) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 轮询已被替换或停止
	if !e.running || e.pollStop == nil || e.pollStop != stop {
		return
	}
	if e.cfg.PollWhileOfflineOnly && e.status.IsConnected() {
		return
	}
	e.triggerLocked(reasonPoll, nil)
}
