package config

import (
	"fmt"
	"net"
)

// TelemetryConfig 可观测性配置
type TelemetryConfig struct {
	// Metrics 是否收集 Prometheus 指标
	// 默认值: true
	Metrics bool `json:"metrics" yaml:"metrics"`

	// Namespace 指标名前缀
	// 默认值: "connectivity"
	Namespace string `json:"namespace" yaml:"namespace"`

	// Tracing 是否为探测请求创建 OpenTelemetry span
	// 默认值: false
	Tracing bool `json:"tracing" yaml:"tracing"`
}

// DefaultTelemetryConfig 返回默认的可观测性配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Metrics:   true,
		Namespace: "connectivity",
	}
}

// Validate 验证可观测性配置
func (c *TelemetryConfig) Validate() error {
	if c.Namespace == "" {
		c.Namespace = "connectivity"
	}
	return nil
}

// APIConfig 状态服务配置
type APIConfig struct {
	// Enabled 是否启动状态 HTTP 服务
	// 默认值: false
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Addr 监听地址
	// 默认值: "127.0.0.1:9470"
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultAPIConfig 返回默认的状态服务配置
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Addr: "127.0.0.1:9470",
	}
}

// Validate 验证状态服务配置
func (c *APIConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("api: invalid addr %q: %w", c.Addr, err)
	}
	return nil
}

// JournalConfig 状态变更日志配置
type JournalConfig struct {
	// Enabled 是否持久化状态变更
	// 默认值: false
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path SQLite 数据库路径
	// 默认值: "connectivity.db"
	Path string `json:"path" yaml:"path"`

	// Retain 最多保留的记录数（0 表示不限制）
	// 默认值: 10000
	Retain int `json:"retain" yaml:"retain"`
}

// DefaultJournalConfig 返回默认的状态日志配置
func DefaultJournalConfig() JournalConfig {
	return JournalConfig{
		Path:   "connectivity.db",
		Retain: 10000,
	}
}

// Validate 验证状态日志配置
func (c *JournalConfig) Validate() error {
	if c.Retain < 0 {
		c.Retain = 0
	}
	if c.Enabled && c.Path == "" {
		return fmt.Errorf("journal: path is required when enabled")
	}
	return nil
}
