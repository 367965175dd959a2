package connectivity

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	cfg *config.Config

	// 自定义校验器（custom 模式）
	validator interfaces.ResponseValidator

	// 注入的实现
	observer       interfaces.InterfaceObserver
	transport      interfaces.Transport
	clock          clock.Clock
	registry       *prometheus.Registry
	tracerProvider trace.TracerProvider
}

func newOptions() *options {
	return &options{cfg: config.NewConfig()}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置来源
// ════════════════════════════════════════════════════════════════════════════

// WithPreset 以预设替换当前配置
//
// 应放在其他选项之前，否则之前的设置会被覆盖。
func WithPreset(p *Preset) Option {
	return func(o *options) error {
		if p == nil {
			return fmt.Errorf("%w: preset", ErrNilOption)
		}
		o.cfg = p.Config()
		return nil
	}
}

// WithConfig 以统一配置替换当前配置（复制，不修改调用方的对象）
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("%w: config", ErrNilOption)
		}
		o.cfg = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 或 YAML 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		o.cfg = cfg
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              探测
// ════════════════════════════════════════════════════════════════════════════

// WithTargets 设置探测地址
func WithTargets(urls ...string) Option {
	return func(o *options) error {
		o.cfg.Probe = o.cfg.Probe.WithTargets(urls...)
		return nil
	}
}

// WithProbeTargets 设置探测目标，可为单个目标指定 Authorization
func WithProbeTargets(targets ...types.ProbeTarget) Option {
	return func(o *options) error {
		o.cfg.Probe.Targets = make([]config.ProbeTargetConfig, 0, len(targets))
		for _, t := range targets {
			o.cfg.Probe.Targets = append(o.cfg.Probe.Targets, config.ProbeTargetConfig{
				URL:           t.URL,
				Authorization: t.Authorization,
			})
		}
		return nil
	}
}

// WithHTTPSOnly 设置是否只探测 HTTPS 目标
func WithHTTPSOnly(v bool) Option {
	return func(o *options) error {
		o.cfg.Probe.HTTPSOnly = v
		return nil
	}
}

// WithSuccessThreshold 设置成功阈值（百分比，超出 0-100 时截断）
func WithSuccessThreshold(percent float64) Option {
	return func(o *options) error {
		o.cfg.Probe = o.cfg.Probe.WithThreshold(percent)
		return nil
	}
}

// WithTimeout 设置单个请求超时
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.cfg.Probe = o.cfg.Probe.WithTimeout(d)
		return nil
	}
}

// WithAuthorization 设置所有请求的 Authorization 头
func WithAuthorization(header string) Option {
	return func(o *options) error {
		o.cfg.Probe.Authorization = header
		return nil
	}
}

// WithBearerToken 以 "Bearer <token>" 作为 Authorization 头
//
// 同时设置了 WithAuthorization 时以后者为准。
func WithBearerToken(token string) Option {
	return func(o *options) error {
		o.cfg.Probe = o.cfg.Probe.WithBearerToken(token)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              校验
// ════════════════════════════════════════════════════════════════════════════

// WithValidationMode 设置校验模式
func WithValidationMode(mode ValidationMode) Option {
	return func(o *options) error {
		o.cfg.Validation.Mode = mode.String()
		return nil
	}
}

// WithExpectedResponse 设置 contains/equals 的期望字符串
func WithExpectedResponse(s string) Option {
	return func(o *options) error {
		o.cfg.Validation.Expected = s
		return nil
	}
}

// WithRegexPattern 设置正则并切换到 regex 模式
func WithRegexPattern(pattern string) Option {
	return func(o *options) error {
		o.cfg.Validation.Mode = types.ValidationRegex.String()
		o.cfg.Validation.Pattern = pattern
		return nil
	}
}

// WithValidator 使用自定义校验器并切换到 custom 模式
func WithValidator(v ResponseValidator) Option {
	return func(o *options) error {
		if v == nil {
			return fmt.Errorf("%w: validator", ErrNilOption)
		}
		o.validator = v
		o.cfg.Validation.Mode = types.ValidationCustom.String()
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              触发
// ════════════════════════════════════════════════════════════════════════════

// WithPolling 启用定期检查
func WithPolling(interval time.Duration) Option {
	return func(o *options) error {
		o.cfg.Polling.Enabled = true
		if interval > 0 {
			o.cfg.Polling.Interval = config.Duration(interval)
		}
		return nil
	}
}

// WithPollWhileOfflineOnly 设置是否只在未连通时轮询
func WithPollWhileOfflineOnly(v bool) Option {
	return func(o *options) error {
		o.cfg.Polling.OfflineOnly = v
		return nil
	}
}

// WithRecheckLatency 设置未连通时接口变化后的检查延迟
func WithRecheckLatency(d time.Duration) Option {
	return func(o *options) error {
		o.cfg.Recheck.Latency = config.Duration(d)
		return nil
	}
}

// WithCheckOnResume 设置 Recheck 是否生效
func WithCheckOnResume(v bool) Option {
	return func(o *options) error {
		o.cfg.Recheck.OnResume = v
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              依赖注入
// ════════════════════════════════════════════════════════════════════════════

// WithObserver 使用自定义接口观察者
func WithObserver(obs interfaces.InterfaceObserver) Option {
	return func(o *options) error {
		if obs == nil {
			return fmt.Errorf("%w: observer", ErrNilOption)
		}
		o.observer = obs
		return nil
	}
}

// WithFramework 选择内置接口观察者：auto / native / polling / static / none
func WithFramework(name string) Option {
	return func(o *options) error {
		o.cfg.Observer.Framework = name
		return nil
	}
}

// WithTransport 使用自定义传输
func WithTransport(t interfaces.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return fmt.Errorf("%w: transport", ErrNilOption)
		}
		o.transport = t
		return nil
	}
}

// WithClock 设置时钟（测试使用 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		o.clock = c
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              可观测性与服务
// ════════════════════════════════════════════════════════════════════════════

// WithMetricsRegistry 将指标注册到指定 Registry
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) error {
		o.registry = reg
		o.cfg.Telemetry.Metrics = reg != nil
		return nil
	}
}

// WithTracerProvider 为探测轮次与请求创建 span
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) error {
		o.tracerProvider = tp
		o.cfg.Telemetry.Tracing = tp != nil
		return nil
	}
}

// WithJournal 将状态变更记录到 SQLite 文件
func WithJournal(path string) Option {
	return func(o *options) error {
		o.cfg.Journal.Enabled = true
		o.cfg.Journal.Path = path
		return nil
	}
}

// WithStatusAPI 在 addr 上提供状态 HTTP 服务
func WithStatusAPI(addr string) Option {
	return func(o *options) error {
		o.cfg.API.Enabled = true
		o.cfg.API.Addr = addr
		return nil
	}
}
