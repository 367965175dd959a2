package config

import (
	"fmt"
	"time"
)

// PollingConfig 轮询配置
type PollingConfig struct {
	// Enabled 是否定期重新检查
	// 默认值: false
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Interval 轮询间隔
	// 默认值: 10s
	Interval Duration `json:"interval" yaml:"interval"`

	// OfflineOnly 只在未连通时轮询
	// 默认值: true
	OfflineOnly bool `json:"offline_only" yaml:"offline_only"`
}

// DefaultPollingConfig 返回默认的轮询配置
func DefaultPollingConfig() PollingConfig {
	return PollingConfig{
		Enabled:     false,
		Interval:    Duration(10 * time.Second),
		OfflineOnly: true,
	}
}

// Validate 验证轮询配置
func (c *PollingConfig) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("polling: interval must be positive, got %s", c.Interval)
	}
	if c.Interval == 0 {
		c.Interval = Duration(10 * time.Second)
	}
	return nil
}

// RecheckConfig 重新检查配置
type RecheckConfig struct {
	// Latency 上次结论为未连通时，接口变化后等待多久再检查
	// 默认值: 500ms
	Latency Duration `json:"latency" yaml:"latency"`

	// OnResume 是否响应外部的恢复触发（如 SIGHUP）
	// 默认值: true
	OnResume bool `json:"on_resume" yaml:"on_resume"`
}

// DefaultRecheckConfig 返回默认的重新检查配置
func DefaultRecheckConfig() RecheckConfig {
	return RecheckConfig{
		Latency:  Duration(500 * time.Millisecond),
		OnResume: true,
	}
}

// Validate 验证重新检查配置
func (c *RecheckConfig) Validate() error {
	if c.Latency < 0 {
		c.Latency = 0
	}
	return nil
}
