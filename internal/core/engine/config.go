package engine

import (
	"time"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/internal/core/validator"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// 默认值
const (
	DefaultThreshold      = 50
	DefaultTimeout        = 5 * time.Second
	DefaultPollInterval   = 10 * time.Second
	DefaultRecheckLatency = 500 * time.Millisecond
)

// Config 引擎配置
type Config struct {
	// Targets 探测目标（过滤前）
	Targets []types.ProbeTarget

	// HTTPSOnly 只探测 HTTPS 目标
	// 默认: true
	HTTPSOnly bool

	// SuccessThreshold 成功阈值
	// 默认: 50%
	SuccessThreshold types.Percentage

	// Timeout 单个请求超时
	// 默认: 5s
	Timeout time.Duration

	// ValidationMode 校验模式
	// 默认: contains
	ValidationMode types.ValidationMode

	// ExpectedResponse contains/equals 的期望字符串
	// 默认: "Success"
	ExpectedResponse string

	// RegexPattern regex 模式的正则
	RegexPattern string

	// Validator custom 模式的校验器
	Validator interfaces.ResponseValidator

	// PollingEnabled 是否定期检查
	// 默认: false
	PollingEnabled bool

	// PollInterval 轮询间隔
	// 默认: 10s
	PollInterval time.Duration

	// PollWhileOfflineOnly 只在未连通时轮询
	// 默认: true
	PollWhileOfflineOnly bool

	// RecheckLatency 上次结论为未连通时，接口变化后的检查延迟
	// 默认: 500ms
	RecheckLatency time.Duration

	// CheckOnResume 是否响应 Recheck
	// 默认: true
	CheckOnResume bool
}

// NewConfig 返回默认配置
func NewConfig() *Config {
	return &Config{
		Targets: types.TargetsFromURLs(
			config.DefaultProbeURL,
			config.DefaultCaptiveProbeURL,
		),
		HTTPSOnly:            true,
		SuccessThreshold:     types.NewPercentage(DefaultThreshold),
		Timeout:              DefaultTimeout,
		ValidationMode:       types.ValidationContains,
		ExpectedResponse:     validator.DefaultExpected,
		RegexPattern:         validator.DefaultPattern,
		PollInterval:         DefaultPollInterval,
		PollWhileOfflineOnly: true,
		RecheckLatency:       DefaultRecheckLatency,
		CheckOnResume:        true,
	}
}

// Validate 修正无效值，并检查校验器是否可构造
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.RecheckLatency < 0 {
		c.RecheckLatency = 0
	}
	_, err := c.buildValidator()
	return err
}

// buildValidator 按模式构造校验器
func (c *Config) buildValidator() (interfaces.ResponseValidator, error) {
	return validator.New(c.ValidationMode, validator.Params{
		Expected: c.ExpectedResponse,
		Pattern:  c.RegexPattern,
		Custom:   c.Validator,
	})
}

// effectiveTargets 过滤后的目标
func (c *Config) effectiveTargets() []types.ProbeTarget {
	out := append([]types.ProbeTarget(nil), c.Targets...)
	if c.HTTPSOnly {
		out = types.FilterHTTPS(out)
	}
	return out
}

// ConfigFromUnified 从统一配置创建引擎配置
func ConfigFromUnified(cfg *config.Config) *Config {
	c := NewConfig()
	if cfg == nil {
		return c
	}

	c.Targets = make([]types.ProbeTarget, 0, len(cfg.Probe.Targets))
	for _, t := range cfg.Probe.Targets {
		c.Targets = append(c.Targets, types.ProbeTarget{URL: t.URL, Authorization: t.Authorization})
	}
	c.HTTPSOnly = cfg.Probe.HTTPSOnly
	c.SuccessThreshold = types.NewPercentage(cfg.Probe.SuccessThreshold)
	c.Timeout = cfg.Probe.Timeout.Duration()

	if mode, err := cfg.Validation.ParsedMode(); err == nil {
		c.ValidationMode = mode
	}
	if cfg.Validation.Expected != "" {
		c.ExpectedResponse = cfg.Validation.Expected
	}
	if cfg.Validation.Pattern != "" {
		c.RegexPattern = cfg.Validation.Pattern
	}

	c.PollingEnabled = cfg.Polling.Enabled
	c.PollInterval = cfg.Polling.Interval.Duration()
	c.PollWhileOfflineOnly = cfg.Polling.OfflineOnly
	c.RecheckLatency = cfg.Recheck.Latency.Duration()
	c.CheckOnResume = cfg.Recheck.OnResume
	return c
}
