package types

import (
	"strings"
	"time"
)

// ============================================================================
//                              ProbeTarget - 探测目标
// ============================================================================

// ProbeTarget 一个探测目标
type ProbeTarget struct {
	// URL 探测地址
	URL string `json:"url" yaml:"url"`

	// Authorization 该目标专用的 Authorization 头（可选）
	// 为空时使用全局配置。凭据不参与 JSON 输出（状态 API、CLI -json）。
	Authorization string `json:"-" yaml:"authorization,omitempty"`
}

// IsHTTPS 检查是否为 HTTPS 地址
func (t ProbeTarget) IsHTTPS() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t.URL)), "https://")
}

// String 返回目标地址
func (t ProbeTarget) String() string {
	return t.URL
}

// TargetsFromURLs 从 URL 列表构建探测目标
func TargetsFromURLs(urls ...string) []ProbeTarget {
	out := make([]ProbeTarget, 0, len(urls))
	for _, u := range urls {
		out = append(out, ProbeTarget{URL: u})
	}
	return out
}

// FilterHTTPS 仅保留 HTTPS 目标
func FilterHTTPS(targets []ProbeTarget) []ProbeTarget {
	out := make([]ProbeTarget, 0, len(targets))
	for _, t := range targets {
		if t.IsHTTPS() {
			out = append(out, t)
		}
	}
	return out
}

// ============================================================================
//                              ProbeOutcome - 单个探测结果
// ============================================================================

// ProbeOutcome 单个目标的探测结果
type ProbeOutcome struct {
	Target ProbeTarget `json:"target"`

	// Success 校验通过
	Success bool `json:"success"`

	// Cancelled 因提前结束被取消，不计入成功或失败
	Cancelled bool `json:"cancelled,omitempty"`

	// StatusCode HTTP 状态码（请求失败时为 0）
	StatusCode int `json:"status_code,omitempty"`

	// BodySize 响应体字节数
	BodySize int `json:"body_size,omitempty"`

	// Error 失败原因（仅用于诊断）
	Error string `json:"error,omitempty"`

	// Duration 请求耗时
	Duration time.Duration `json:"duration"`

	// CompletedAt 完成时间
	CompletedAt time.Time `json:"completed_at"`
}

// ============================================================================
//                              RoundResult - 一轮探测的汇总
// ============================================================================

// RoundResult 一轮探测的汇总结果
//
// 每轮拥有独立计数，轮次之间不共享可变状态。
type RoundResult struct {
	// RoundID 轮次标识
	RoundID string `json:"round_id"`

	// Successes 成功数
	Successes int `json:"successes"`

	// Failures 失败数（网络错误、非 2xx、解码失败、超时）
	Failures int `json:"failures"`

	// Cancelled 提前结束时被取消的探测数
	Cancelled int `json:"cancelled"`

	// Total 目标总数
	Total int `json:"total"`

	// Threshold 本轮使用的成功阈值
	Threshold Percentage `json:"threshold"`

	// EarlyExit 是否因结论已确定而提前结束
	EarlyExit bool `json:"early_exit"`

	// Outcomes 各目标结果，顺序与目标列表一致
	Outcomes []ProbeOutcome `json:"outcomes,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Percentage 成功占比
func (r RoundResult) Percentage() Percentage {
	return PercentageOf(r.Successes, r.Total)
}

// Connected 本轮结论
//
// 目标列表为空时恒为 false。
func (r RoundResult) Connected() bool {
	if r.Total <= 0 {
		return false
	}
	return r.Percentage().AtLeast(r.Threshold)
}

// Duration 本轮耗时
func (r RoundResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ============================================================================
//                              Verdict - 结论
// ============================================================================

// Verdict 一次检查的最终结论
type Verdict struct {
	// Status 推导出的连通性状态
	Status Status `json:"status"`

	// Interfaces 本轮计算时的接口状态
	Interfaces InterfaceState `json:"-"`

	// Result 探测汇总
	Result RoundResult `json:"result"`
}

// Connected 是否连通
func (v Verdict) Connected() bool {
	return v.Status.IsConnected()
}
