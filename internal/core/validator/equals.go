package validator

import (
	"strings"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// EqualsValidator 去除首尾空白后与期望字符串完全相等即通过
type EqualsValidator struct {
	Expected string
}

var _ interfaces.ResponseValidator = (*EqualsValidator)(nil)

// NewEquals 创建相等校验器
func NewEquals(expected string) *EqualsValidator {
	return &EqualsValidator{Expected: expected}
}

// IsValid 实现 interfaces.ResponseValidator
func (v *EqualsValidator) IsValid(_ types.ProbeTarget, resp *interfaces.Response) bool {
	text, ok := decodeText(resp)
	if !ok {
		return false
	}
	return strings.TrimSpace(text) == v.Expected
}
