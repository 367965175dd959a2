package config

import (
	"fmt"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// 默认校验参数
const (
	DefaultExpectedResponse = "Success"
	DefaultRegexPattern     = ".*?<BODY>.*?Success.*?</BODY>.*"
)

// ValidationConfig 响应校验配置
type ValidationConfig struct {
	// Mode 校验模式: contains / equals / regex / custom
	// 默认值: contains
	Mode string `json:"mode" yaml:"mode"`

	// Expected contains/equals 模式的期望字符串
	// 默认值: "Success"
	Expected string `json:"expected" yaml:"expected"`

	// Pattern regex 模式的正则
	// 默认值: ".*?<BODY>.*?Success.*?</BODY>.*"
	Pattern string `json:"pattern" yaml:"pattern"`
}

// DefaultValidationConfig 返回默认的校验配置
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		Mode:     types.ValidationContains.String(),
		Expected: DefaultExpectedResponse,
		Pattern:  DefaultRegexPattern,
	}
}

// Validate 验证校验配置
//
// 不检查正则语法：无效的正则使每次探测失败，而不是阻止启动。
func (c *ValidationConfig) Validate() error {
	if _, err := c.ParsedMode(); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	return nil
}

// ParsedMode 解析校验模式
func (c ValidationConfig) ParsedMode() (types.ValidationMode, error) {
	var m types.ValidationMode
	err := m.UnmarshalText([]byte(c.Mode))
	return m, err
}
