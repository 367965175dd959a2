package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-connectivity/config"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标名前缀
	// 默认: "connectivity"
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "connectivity",
	}
}

// Validate 修正无效值
func (c *Config) Validate() {
	if c.Namespace == "" {
		c.Namespace = "connectivity"
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Telemetry.Metrics,
		Namespace: cfg.Telemetry.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config       `optional:"true"`
	Registry   *prometheus.Registry `optional:"true"`
}

// Result Metrics 输出
type Result struct {
	fx.Out

	Reporter Reporter
	Gatherer prometheus.Gatherer
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewReporterFromParams),
)

// NewReporterFromParams 从参数创建 Reporter
//
// 未提供 Registry 时使用私有 Registry，避免与进程内其他组件的默认注册表冲突。
func NewReporterFromParams(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)

	reg := p.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	if !cfg.Enabled {
		return Result{Reporter: NoopReporter{}, Gatherer: reg}
	}
	return Result{Reporter: NewCollector(cfg, reg), Gatherer: reg}
}
