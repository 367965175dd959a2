package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// 默认探测地址
const (
	DefaultProbeURL        = "https://www.apple.com/library/test/success.html"
	DefaultCaptiveProbeURL = "https://captive.apple.com/hotspot-detect.html"
)

// ProbeTargetConfig 单个探测目标
type ProbeTargetConfig struct {
	// URL 探测地址
	URL string `json:"url" yaml:"url"`

	// Authorization 该目标专用的 Authorization 头（可选）
	Authorization string `json:"authorization,omitempty" yaml:"authorization,omitempty"`
}

// ProbeConfig 探测配置
type ProbeConfig struct {
	// Targets 探测目标
	// 默认值: Apple 的两个 success 页面
	Targets []ProbeTargetConfig `json:"targets" yaml:"targets"`

	// HTTPSOnly 只使用 HTTPS 目标，非 HTTPS 目标被过滤
	// 默认值: true
	HTTPSOnly bool `json:"https_only" yaml:"https_only"`

	// SuccessThreshold 成功阈值（百分比，0-100）
	// 默认值: 50
	SuccessThreshold float64 `json:"success_threshold" yaml:"success_threshold"`

	// Timeout 单个请求超时
	// 默认值: 5s
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// Authorization 全局 Authorization 头
	Authorization string `json:"authorization,omitempty" yaml:"authorization,omitempty"`

	// BearerToken 全局 Bearer Token，Authorization 非空时忽略
	BearerToken string `json:"bearer_token,omitempty" yaml:"bearer_token,omitempty"`

	// MaxBodySize 读取响应体的上限（字节）
	// 默认值: 64KiB
	MaxBodySize int64 `json:"max_body_size" yaml:"max_body_size"`

	// UserAgent 请求 User-Agent
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`

	// DisableKeepAlives 每次探测使用新连接
	// 默认值: true
	DisableKeepAlives bool `json:"disable_keep_alives" yaml:"disable_keep_alives"`
}

// DefaultProbeConfig 返回默认的探测配置
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Targets: []ProbeTargetConfig{
			{URL: DefaultProbeURL},
			{URL: DefaultCaptiveProbeURL},
		},
		HTTPSOnly:         true,
		SuccessThreshold:  50,
		Timeout:           Duration(5 * time.Second),
		MaxBodySize:       64 << 10,
		DisableKeepAlives: true,
	}
}

// Validate 验证探测配置
func (c *ProbeConfig) Validate() error {
	if c.SuccessThreshold < 0 {
		c.SuccessThreshold = 0
	}
	if c.SuccessThreshold > 100 {
		c.SuccessThreshold = 100
	}
	if c.Timeout <= 0 {
		c.Timeout = Duration(5 * time.Second)
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = 64 << 10
	}
	for i, t := range c.Targets {
		u, err := url.Parse(strings.TrimSpace(t.URL))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("probe: targets[%d]: invalid url %q", i, t.URL)
		}
	}
	return nil
}

// EffectiveTargets 返回实际使用的探测目标
//
// HTTPSOnly 时过滤掉非 HTTPS 目标；结果可能为空，空列表的检查结论为未连接。
func (c ProbeConfig) EffectiveTargets() []types.ProbeTarget {
	out := make([]types.ProbeTarget, 0, len(c.Targets))
	for _, t := range c.Targets {
		out = append(out, types.ProbeTarget{URL: strings.TrimSpace(t.URL), Authorization: t.Authorization})
	}
	if c.HTTPSOnly {
		out = types.FilterHTTPS(out)
	}
	return out
}

// WithTargets 设置探测地址
func (c ProbeConfig) WithTargets(urls ...string) ProbeConfig {
	c.Targets = make([]ProbeTargetConfig, 0, len(urls))
	for _, u := range urls {
		c.Targets = append(c.Targets, ProbeTargetConfig{URL: u})
	}
	return c
}

// WithThreshold 设置成功阈值
func (c ProbeConfig) WithThreshold(percent float64) ProbeConfig {
	c.SuccessThreshold = percent
	return c
}

// WithTimeout 设置单个请求超时
func (c ProbeConfig) WithTimeout(d time.Duration) ProbeConfig {
	c.Timeout = Duration(d)
	return c
}

// WithBearerToken 设置 Bearer Token
func (c ProbeConfig) WithBearerToken(token string) ProbeConfig {
	c.BearerToken = token
	return c
}
