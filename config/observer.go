package config

import (
	"fmt"
	"strings"
	"time"
)

// ObserverConfig 接口观察者配置
type ObserverConfig struct {
	// Framework 实现选择: auto / native / polling / static / none
	// 默认值: auto
	Framework string `json:"framework" yaml:"framework"`

	// PollInterval 轮询观察者的采集间隔
	// 默认值: 5s
	PollInterval Duration `json:"poll_interval" yaml:"poll_interval"`
}

// DefaultObserverConfig 返回默认的观察者配置
func DefaultObserverConfig() ObserverConfig {
	return ObserverConfig{
		Framework:    "auto",
		PollInterval: Duration(5 * time.Second),
	}
}

// Validate 验证观察者配置
func (c *ObserverConfig) Validate() error {
	c.Framework = strings.ToLower(strings.TrimSpace(c.Framework))
	switch c.Framework {
	case "":
		c.Framework = "auto"
	case "auto", "native", "polling", "static", "none":
	default:
		return fmt.Errorf("observer: unknown framework %q", c.Framework)
	}
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(5 * time.Second)
	}
	return nil
}
