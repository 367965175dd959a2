package types

import (
	"fmt"
	"math"
)

// ============================================================================
//                              Percentage - 百分比
// ============================================================================

// Percentage 百分比
//
// 取值始终位于 [0, 100]，任何越界输入都会被截断。
// 零值表示 0%。
type Percentage struct {
	value float64
}

// NewPercentage 从原始数值创建百分比
//
// NaN 视为 0。
func NewPercentage(value float64) Percentage {
	return Percentage{value: clampPercent(value)}
}

// PercentageOf 从 (成功数, 总数) 计算百分比
//
// total <= 0 时返回 0%，不会除零。
func PercentageOf(successes, total int) Percentage {
	if total <= 0 {
		return Percentage{}
	}
	return NewPercentage(float64(successes) / float64(total) * 100)
}

// Value 返回数值
func (p Percentage) Value() float64 {
	return p.value
}

// AtLeast 检查是否不低于阈值（>=）
func (p Percentage) AtLeast(threshold Percentage) bool {
	return p.value >= threshold.value
}

// String 返回百分比字符串
func (p Percentage) String() string {
	return fmt.Sprintf("%.1f%%", p.value)
}

// MarshalText 实现 encoding.TextMarshaler
func (p Percentage) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%g", p.value)), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
//
// 接受 "50" 或 "50%" 两种写法。
func (p *Percentage) UnmarshalText(text []byte) error {
	s := string(text)
	if n := len(s); n > 0 && s[n-1] == '%' {
		s = s[:n-1]
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return fmt.Errorf("invalid percentage %q: %w", string(text), err)
	}
	*p = NewPercentage(v)
	return nil
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
