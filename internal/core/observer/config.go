package observer

import (
	"time"

	"github.com/dep2p/go-connectivity/config"
)

// Config 观察者配置
type Config struct {
	// Framework 实现选择
	// 默认: auto
	Framework Framework

	// PollInterval 轮询实现的采集间隔
	// 默认: 5s
	PollInterval time.Duration
}

// NewConfig 返回默认配置
func NewConfig() *Config {
	return &Config{
		Framework:    FrameworkAuto,
		PollInterval: DefaultPollInterval,
	}
}

// Validate 修正无效值
func (c *Config) Validate() {
	if c.Framework == "" {
		c.Framework = FrameworkAuto
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
}

// ConfigFromUnified 从统一配置创建观察者配置
func ConfigFromUnified(cfg *config.Config) *Config {
	c := NewConfig()
	if cfg == nil {
		return c
	}
	c.Framework = Framework(cfg.Observer.Framework)
	c.PollInterval = cfg.Observer.PollInterval.Duration()
	c.Validate()
	return c
}
