package transport

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-connectivity/config"
)

// Config 传输配置
type Config struct {
	// Timeout 单个请求的兜底超时
	// 默认: 5s
	Timeout time.Duration

	// Authorization 所有请求附带的 Authorization 头
	Authorization string

	// BearerToken 未设置 Authorization 时使用的令牌
	BearerToken string

	// MaxBodySize 读取响应体的上限
	// 默认: 64KiB
	MaxBodySize int64

	// UserAgent 请求 User-Agent（为空使用 Go 默认值）
	UserAgent string

	// DisableKeepAlives 每次探测使用新连接
	DisableKeepAlives bool

	// DisableTracing 不使用 otelhttp 包装
	DisableTracing bool

	// TracerProvider otelhttp 使用的 provider，nil 时使用全局 provider
	TracerProvider trace.TracerProvider
}

// 默认值
const (
	DefaultTimeout     = 5 * time.Second
	DefaultMaxBodySize = 64 << 10
)

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Validate 修正无效值
func (c *Config) Validate() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
}

// ConfigFromUnified 从统一配置创建传输配置
func ConfigFromUnified(cfg *config.Config) *Config {
	if cfg == nil {
		return NewConfig()
	}
	return &Config{
		Timeout:           cfg.Probe.Timeout.Duration(),
		Authorization:     cfg.Probe.Authorization,
		BearerToken:       cfg.Probe.BearerToken,
		MaxBodySize:       cfg.Probe.MaxBodySize,
		UserAgent:         cfg.Probe.UserAgent,
		DisableKeepAlives: cfg.Probe.DisableKeepAlives,
		DisableTracing:    !cfg.Telemetry.Tracing,
	}
}
