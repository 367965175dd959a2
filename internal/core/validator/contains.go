package validator

import (
	"strings"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ContainsValidator 响应文本包含期望字符串即通过
type ContainsValidator struct {
	Expected string
}

var _ interfaces.ResponseValidator = (*ContainsValidator)(nil)

// NewContains 创建包含校验器
func NewContains(expected string) *ContainsValidator {
	return &ContainsValidator{Expected: expected}
}

// IsValid 实现 interfaces.ResponseValidator
func (v *ContainsValidator) IsValid(_ types.ProbeTarget, resp *interfaces.Response) bool {
	text, ok := decodeText(resp)
	if !ok {
		return false
	}
	return strings.Contains(text, v.Expected)
}
