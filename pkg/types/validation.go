package types

import (
	"fmt"
	"strings"
)

// ValidationMode 响应校验模式
type ValidationMode int

const (
	// ValidationContains 响应体包含期望字符串
	ValidationContains ValidationMode = iota
	// ValidationEquals 去除首尾空白后等于期望字符串
	ValidationEquals
	// ValidationRegex 响应体匹配正则表达式
	ValidationRegex
	// ValidationCustom 调用方自定义校验
	ValidationCustom
)

// String 返回模式名称
func (m ValidationMode) String() string {
	switch m {
	case ValidationContains:
		return "contains"
	case ValidationEquals:
		return "equals"
	case ValidationRegex:
		return "regex"
	case ValidationCustom:
		return "custom"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (m ValidationMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *ValidationMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "contains", "":
		*m = ValidationContains
	case "equals":
		*m = ValidationEquals
	case "regex", "matches":
		*m = ValidationRegex
	case "custom":
		*m = ValidationCustom
	default:
		return fmt.Errorf("unknown validation mode %q", string(text))
	}
	return nil
}
