package validator

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("core/validator")

// DefaultExpected 默认期望响应
const DefaultExpected = "Success"

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrCustomValidatorRequired Custom 模式缺少自定义校验器
	ErrCustomValidatorRequired = errors.New("custom validation mode requires a validator")

	// ErrUnknownMode 未知校验模式
	ErrUnknownMode = errors.New("unknown validation mode")
)

// ============================================================================
//                              工厂
// ============================================================================

// Params 构造校验器的参数
type Params struct {
	// Expected Contains/Equals 模式的期望字符串
	Expected string

	// Pattern Regex 模式的正则
	Pattern string

	// Custom Custom 模式的校验器
	Custom interfaces.ResponseValidator
}

// New 按模式构造校验器
func New(mode types.ValidationMode, p Params) (interfaces.ResponseValidator, error) {
	switch mode {
	case types.ValidationContains:
		return NewContains(p.Expected), nil
	case types.ValidationEquals:
		return NewEquals(p.Expected), nil
	case types.ValidationRegex:
		return NewRegex(p.Pattern), nil
	case types.ValidationCustom:
		if p.Custom == nil {
			return nil, ErrCustomValidatorRequired
		}
		return p.Custom, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

// Default 返回默认校验器（包含 "Success"）
func Default() interfaces.ResponseValidator {
	return NewContains(DefaultExpected)
}
