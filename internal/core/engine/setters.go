package engine

import (
	"time"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ============================================================================
//                              查询
// ============================================================================

// Status 当前状态
//
// 首轮完成前为 StatusDetermining。Stop 后保留最后一次结论。
func (e *Engine) Status() types.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// IsConnected 当前是否连通
func (e *Engine) IsConnected() bool {
	return e.Status().IsConnected()
}

// AvailableInterfaces 最近一轮记录的可用接口
func (e *Engine) AvailableInterfaces() []types.Interface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.Interface(nil), e.ifaces.Interfaces...)
}

// CurrentInterface 最近一轮记录的主接口
func (e *Engine) CurrentInterface() (types.Interface, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ifaces.Primary, e.ifaces.HasPrimary
}

// LastResult 最近一次写入共享状态的探测汇总
func (e *Engine) LastResult() (types.RoundResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.hasLast
}

// Targets 过滤后实际探测的目标
func (e *Engine) Targets() []types.ProbeTarget {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.ProbeTarget(nil), e.targets...)
}

// ============================================================================
//                              运行时配置
// ============================================================================
//
// 修改从下一轮开始生效，进行中的轮次不受影响。

// SetTargets 替换探测目标
func (e *Engine) SetTargets(targets []types.ProbeTarget) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.Targets = append([]types.ProbeTarget(nil), targets...)
	e.targets = e.cfg.effectiveTargets()
}

// SetTargetURLs 以 URL 替换探测目标
func (e *Engine) SetTargetURLs(urls ...string) {
	e.SetTargets(types.TargetsFromURLs(urls...))
}

// SetHTTPSOnly 设置是否只探测 HTTPS 目标
func (e *Engine) SetHTTPSOnly(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.HTTPSOnly = v
	e.targets = e.cfg.effectiveTargets()
}

// SetSuccessThreshold 设置成功阈值
func (e *Engine) SetSuccessThreshold(p types.Percentage) {
	e.mu.Lock()
	e.cfg.SuccessThreshold = p
	e.mu.Unlock()
}

// SetValidator 使用自定义校验器，模式切换为 custom
func (e *Engine) SetValidator(v interfaces.ResponseValidator) error {
	return e.updateValidation(func(c *Config) {
		c.Validator = v
		c.ValidationMode = types.ValidationCustom
	})
}

// SetValidationMode 切换校验模式
//
// 切换为 custom 而未设置校验器时返回错误，原配置保持不变。
func (e *Engine) SetValidationMode(mode types.ValidationMode) error {
	return e.updateValidation(func(c *Config) {
		c.ValidationMode = mode
	})
}

// SetExpectedResponse 设置 contains/equals 的期望字符串
func (e *Engine) SetExpectedResponse(s string) error {
	return e.updateValidation(func(c *Config) {
		c.ExpectedResponse = s
	})
}

// SetRegexPattern 设置 regex 模式的正则
//
// 无法编译的正则不会报错，此后所有响应都判定为失败。
func (e *Engine) SetRegexPattern(pattern string) error {
	return e.updateValidation(func(c *Config) {
		c.RegexPattern = pattern
	})
}

func (e *Engine) updateValidation(apply func(*Config)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := *e.cfg
	apply(&next)
	v, err := next.buildValidator()
	if err != nil {
		return err
	}
	*e.cfg = next
	e.validator = v
	return nil
}

// SetPolling 开启或关闭轮询
func (e *Engine) SetPolling(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.PollingEnabled = enabled
	e.armPollLocked()
}

// SetPollInterval 设置轮询间隔，非正值使用默认值
func (e *Engine) SetPollInterval(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if d <= 0 {
		d = DefaultPollInterval
	}
	e.cfg.PollInterval = d
	e.armPollLocked()
}

// SetPollWhileOfflineOnly 设置是否只在未连通时轮询
func (e *Engine) SetPollWhileOfflineOnly(v bool) {
	e.mu.Lock()
	e.cfg.PollWhileOfflineOnly = v
	e.mu.Unlock()
}

// SetRecheckLatency 设置接口变化后的检查延迟
func (e *Engine) SetRecheckLatency(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.mu.Lock()
	e.cfg.RecheckLatency = d
	e.mu.Unlock()
}

// SetCheckOnResume 设置是否响应 Recheck
func (e *Engine) SetCheckOnResume(v bool) {
	e.mu.Lock()
	e.cfg.CheckOnResume = v
	e.mu.Unlock()
}
