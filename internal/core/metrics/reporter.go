package metrics

import (
	"time"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// Reporter 提供记录连通性指标的方法
type Reporter interface {
	// ProbeCompleted 记录单个探测结果
	ProbeCompleted(outcome types.ProbeOutcome)

	// RoundCompleted 记录一轮探测的汇总
	RoundCompleted(result types.RoundResult)

	// StatusChanged 记录状态变更
	StatusChanged(previous, current types.Status)

	// TriggerCoalesced 记录被合并的触发
	TriggerCoalesced(reason string)
}

// NoopReporter 不记录任何指标
type NoopReporter struct{}

var _ Reporter = NoopReporter{}

// ProbeCompleted 实现 Reporter
func (NoopReporter) ProbeCompleted(types.ProbeOutcome) {}

// RoundCompleted 实现 Reporter
func (NoopReporter) RoundCompleted(types.RoundResult) {}

// StatusChanged 实现 Reporter
func (NoopReporter) StatusChanged(types.Status, types.Status) {}

// TriggerCoalesced 实现 Reporter
func (NoopReporter) TriggerCoalesced(string) {}

// outcomeLabel 探测结果标签
func outcomeLabel(o types.ProbeOutcome) string {
	switch {
	case o.Cancelled:
		return "cancelled"
	case o.Success:
		return "success"
	default:
		return "failure"
	}
}

// verdictLabel 轮次结论标签
func verdictLabel(r types.RoundResult) string {
	if r.Total == 0 {
		return "empty"
	}
	if r.Connected() {
		return "connected"
	}
	return "disconnected"
}

// seconds 转换为秒
func seconds(d time.Duration) float64 {
	return d.Seconds()
}
