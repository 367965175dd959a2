package dispatcher

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/internal/core/validator"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("core/dispatcher")

const tracerName = "github.com/dep2p/go-connectivity/internal/core/dispatcher"

// DefaultTimeout 单个请求的默认超时
const DefaultTimeout = 5 * time.Second

// Request 一轮探测的输入
type Request struct {
	// Targets 探测目标
	Targets []types.ProbeTarget

	// Validator 成功判定，nil 时使用 validator.Default()
	Validator interfaces.ResponseValidator

	// Timeout 单个请求超时
	Timeout time.Duration

	// Threshold 成功阈值
	Threshold types.Percentage
}

// Dispatcher 探测调度器
//
// Dispatcher 本身无状态，可被多个 goroutine 同时使用。
type Dispatcher struct {
	transport interfaces.Transport
	reporter  metrics.Reporter
	clock     clock.Clock
	tracer    trace.Tracer
}

// Option 调度器选项
type Option func(*Dispatcher)

// WithReporter 设置指标上报
func WithReporter(r metrics.Reporter) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.reporter = r
		}
	}
}

// WithClock 设置时钟（测试用）
func WithClock(c clock.Clock) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用全局 provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) {
		if tp != nil {
			d.tracer = tp.Tracer(tracerName)
		}
	}
}

// New 创建调度器
func New(transport interfaces.Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		reporter:  metrics.NoopReporter{},
		clock:     clock.New(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ============================================================================
//                              执行
// ============================================================================

// Run 执行一轮探测并阻塞直到全部请求结束
func (d *Dispatcher) Run(ctx context.Context, req Request) types.RoundResult {
	total := len(req.Targets)
	result := types.RoundResult{
		RoundID:   uuid.NewString(),
		Total:     total,
		Threshold: req.Threshold,
		Outcomes:  make([]types.ProbeOutcome, total),
		StartedAt: d.clock.Now(),
	}

	if total == 0 {
		result.FinishedAt = result.StartedAt
		logger.Debug("目标列表为空，跳过探测", "round", result.RoundID)
		d.reporter.RoundCompleted(result)
		return result
	}

	ctx, span := d.tracer.Start(ctx, "connectivity.round",
		trace.WithAttributes(
			attribute.String("round.id", result.RoundID),
			attribute.Int("round.targets", total),
			attribute.Float64("round.threshold", req.Threshold.Value()),
		))
	defer span.End()

	v := req.Validator
	if v == nil {
		v = validator.Default()
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	roundCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex
		settled bool
		done    int
	)

	g := new(errgroup.Group)
	g.SetLimit(total)

	for i, target := range req.Targets {
		g.Go(func() error {
			outcome := d.probe(roundCtx, target, v, timeout)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case settled:
				outcome.Cancelled = true
			case ctx.Err() != nil && !outcome.Success:
				outcome.Cancelled = true
			}

			if outcome.Cancelled {
				outcome.Success = false
				result.Cancelled++
			} else if outcome.Success {
				result.Successes++
			} else {
				result.Failures++
			}
			done++

			if !settled && !outcome.Cancelled &&
				types.PercentageOf(result.Successes, total).AtLeast(req.Threshold) {
				settled = true
				if done < total {
					result.EarlyExit = true
					cancel()
				}
			}

			result.Outcomes[i] = outcome
			d.reporter.ProbeCompleted(outcome)
			return nil
		})
	}
	_ = g.Wait()

	result.FinishedAt = d.clock.Now()

	span.SetAttributes(
		attribute.Int("round.successes", result.Successes),
		attribute.Int("round.failures", result.Failures),
		attribute.Int("round.cancelled", result.Cancelled),
		attribute.Bool("round.early_exit", result.EarlyExit),
		attribute.Bool("round.connected", result.Connected()),
	)

	logger.Debug("探测轮次完成",
		"round", result.RoundID,
		"successes", result.Successes,
		"failures", result.Failures,
		"cancelled", result.Cancelled,
		"total", total,
		"earlyExit", result.EarlyExit,
		"duration", result.Duration())

	d.reporter.RoundCompleted(result)
	return result
}

// RunAsync 在后台执行一轮探测，结束后恰好调用一次 done
func (d *Dispatcher) RunAsync(ctx context.Context, req Request, done func(types.RoundResult)) {
	go func() {
		done(d.Run(ctx, req))
	}()
}

// probe 探测单个目标
func (d *Dispatcher) probe(ctx context.Context, target types.ProbeTarget, v interfaces.ResponseValidator, timeout time.Duration) types.ProbeOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "connectivity.probe",
		trace.WithAttributes(attribute.String("probe.url", target.URL)))
	defer span.End()

	start := d.clock.Now()
	outcome := types.ProbeOutcome{Target: target}

	err := d.fetchAndValidate(ctx, target, v, &outcome)

	outcome.CompletedAt = d.clock.Now()
	outcome.Duration = outcome.CompletedAt.Sub(start)

	if err != nil {
		outcome.Error = err.Error()
		span.SetStatus(codes.Error, outcome.Error)
		logger.Debug("探测失败", "url", target.URL, "err", err)
	}
	span.SetAttributes(
		attribute.Int("http.status_code", outcome.StatusCode),
		attribute.Bool("probe.success", outcome.Success),
	)
	return outcome
}

func (d *Dispatcher) fetchAndValidate(ctx context.Context, target types.ProbeTarget, v interfaces.ResponseValidator, outcome *types.ProbeOutcome) error {
	resp, err := d.transport.Fetch(ctx, target)
	if err != nil {
		return err
	}
	if resp == nil {
		return ErrNilResponse
	}

	outcome.StatusCode = resp.StatusCode
	outcome.BodySize = len(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	ok, err := safeValidate(v, target, resp)
	if err != nil {
		return err
	}
	if !ok {
		return ErrValidationFailed
	}
	outcome.Success = true
	return nil
}

// safeValidate 调用校验器，panic 视为失败
func safeValidate(v interfaces.ResponseValidator, target types.ProbeTarget, resp *interfaces.Response) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %v", ErrValidatorPanic, r)
		}
	}()
	return v.IsValid(target, resp), nil
}
