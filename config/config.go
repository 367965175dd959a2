// Package config 提供统一的配置管理
//
// 本包采用与组件对应的分段配置：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，提供 DefaultXxxConfig 与 Validate
//   - 支持从 JSON 与 YAML 文件加载（按扩展名选择）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Probe = cfg.Probe.WithThreshold(75)
//	cfg.Polling.Enabled = true
//
//	// 从文件加载
//	cfg, err := config.Load("connectivity.yaml")
//
// 各组件通过自己的 ConfigFromUnified(*config.Config) 取得所需字段。
package config

import (
	"errors"
)

// ErrNilConfig 配置为空
var ErrNilConfig = errors.New("config is nil")

// Config 是 go-connectivity 的完整配置结构
//
// 配置按照功能模块组织：
//   - Probe: 探测目标、阈值、超时、认证
//   - Validation: 响应校验模式
//   - Polling: 定期重新检查
//   - Recheck: 断网后的重新检查延迟与恢复触发
//   - Observer: 网络接口观察者
//   - Telemetry: 指标与链路追踪
//   - API: 状态 HTTP 服务
//   - Journal: 状态变更持久化
type Config struct {
	// Probe 探测配置
	Probe ProbeConfig `json:"probe" yaml:"probe"`

	// Validation 响应校验配置
	Validation ValidationConfig `json:"validation" yaml:"validation"`

	// Polling 轮询配置
	Polling PollingConfig `json:"polling" yaml:"polling"`

	// Recheck 重新检查配置
	Recheck RecheckConfig `json:"recheck" yaml:"recheck"`

	// Observer 接口观察者配置
	Observer ObserverConfig `json:"observer" yaml:"observer"`

	// Telemetry 可观测性配置
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`

	// API 状态服务配置
	API APIConfig `json:"api" yaml:"api"`

	// Journal 状态日志配置
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Probe:      DefaultProbeConfig(),
		Validation: DefaultValidationConfig(),
		Polling:    DefaultPollingConfig(),
		Recheck:    DefaultRecheckConfig(),
		Observer:   DefaultObserverConfig(),
		Telemetry:  DefaultTelemetryConfig(),
		API:        DefaultAPIConfig(),
		Journal:    DefaultJournalConfig(),
	}
}

// Validate 验证配置的有效性
//
// 可修复的值（如非正的超时）被就地修正为默认值；
// 无法修复的输入（如格式错误的 URL、未知的校验模式）返回错误。
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if err := c.Probe.Validate(); err != nil {
		return err
	}
	if err := c.Validation.Validate(); err != nil {
		return err
	}
	if err := c.Polling.Validate(); err != nil {
		return err
	}
	if err := c.Recheck.Validate(); err != nil {
		return err
	}
	if err := c.Observer.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	return c.Journal.Validate()
}

// Clone 返回深拷贝
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Probe.Targets = append([]ProbeTargetConfig(nil), c.Probe.Targets...)
	return &out
}
