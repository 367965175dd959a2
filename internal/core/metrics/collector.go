package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// Collector 基于 Prometheus 的 Reporter 实现
type Collector struct {
	probes        *prometheus.CounterVec
	probeDuration prometheus.Histogram
	rounds        *prometheus.CounterVec
	roundDuration prometheus.Histogram
	earlyExits    prometheus.Counter
	coalesced     *prometheus.CounterVec
	status        prometheus.Gauge
	transitions   *prometheus.CounterVec
}

var _ Reporter = (*Collector)(nil)

// NewCollector 创建并注册指标
//
// reg 为 nil 时只创建不注册（测试用）。
func NewCollector(cfg Config, reg prometheus.Registerer) *Collector {
	cfg.Validate()
	ns := cfg.Namespace

	c := &Collector{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "probes_total",
			Help:      "Probe requests by outcome.",
		}, []string{"outcome"}),
		probeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "probe_duration_seconds",
			Help:      "Duration of individual probe requests.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rounds_total",
			Help:      "Completed check rounds by verdict.",
		}, []string{"verdict"}),
		roundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "round_duration_seconds",
			Help:      "Wall clock duration of check rounds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		earlyExits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "round_early_exits_total",
			Help:      "Rounds that cancelled pending probes once the verdict was certain.",
		}),
		coalesced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "triggers_coalesced_total",
			Help:      "Check triggers merged into an in-flight or queued round.",
		}, []string{"reason"}),
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "status",
			Help:      "Current connectivity status code (0 = determining).",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "status_changes_total",
			Help:      "Connectivity status changes by resulting status.",
		}, []string{"status"}),
	}

	if reg != nil {
		reg.MustRegister(
			c.probes, c.probeDuration,
			c.rounds, c.roundDuration, c.earlyExits,
			c.coalesced, c.status, c.transitions,
		)
	}
	return c
}

// ProbeCompleted 实现 Reporter
func (c *Collector) ProbeCompleted(outcome types.ProbeOutcome) {
	c.probes.WithLabelValues(outcomeLabel(outcome)).Inc()
	if !outcome.Cancelled {
		c.probeDuration.Observe(seconds(outcome.Duration))
	}
}

// RoundCompleted 实现 Reporter
func (c *Collector) RoundCompleted(result types.RoundResult) {
	c.rounds.WithLabelValues(verdictLabel(result)).Inc()
	c.roundDuration.Observe(seconds(result.Duration()))
	if result.EarlyExit {
		c.earlyExits.Inc()
	}
}

// StatusChanged 实现 Reporter
func (c *Collector) StatusChanged(_, current types.Status) {
	c.status.Set(float64(current))
	c.transitions.WithLabelValues(current.String()).Inc()
}

// TriggerCoalesced 实现 Reporter
func (c *Collector) TriggerCoalesced(reason string) {
	c.coalesced.WithLabelValues(reason).Inc()
}

// Handler 返回 /metrics 处理器
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
