package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/pkg/types"
)

func TestCollector_ProbeCompleted(t *testing.T) {
	c := NewCollector(DefaultConfig(), prometheus.NewRegistry())

	c.ProbeCompleted(types.ProbeOutcome{Success: true, Duration: 20 * time.Millisecond})
	c.ProbeCompleted(types.ProbeOutcome{Success: false})
	c.ProbeCompleted(types.ProbeOutcome{Success: false})
	c.ProbeCompleted(types.ProbeOutcome{Cancelled: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.probes.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.probes.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.probes.WithLabelValues("cancelled")))
}

func TestCollector_RoundCompleted(t *testing.T) {
	c := NewCollector(DefaultConfig(), prometheus.NewRegistry())
	now := time.Now()

	c.RoundCompleted(types.RoundResult{
		Successes: 1, Total: 2, Threshold: types.NewPercentage(50),
		EarlyExit: true, StartedAt: now, FinishedAt: now.Add(time.Second),
	})
	c.RoundCompleted(types.RoundResult{
		Successes: 0, Failures: 2, Total: 2, Threshold: types.NewPercentage(50),
	})
	c.RoundCompleted(types.RoundResult{})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.rounds.WithLabelValues("connected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rounds.WithLabelValues("disconnected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rounds.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.earlyExits))
}

func TestCollector_StatusChanged(t *testing.T) {
	c := NewCollector(DefaultConfig(), prometheus.NewRegistry())

	c.StatusChanged(types.StatusDetermining, types.StatusConnectedViaWiFi)
	assert.Equal(t, float64(types.StatusConnectedViaWiFi), testutil.ToFloat64(c.status))

	c.StatusChanged(types.StatusConnectedViaWiFi, types.StatusNotConnected)
	assert.Equal(t, float64(types.StatusNotConnected), testutil.ToFloat64(c.status))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues(types.StatusNotConnected.String())))
}

func TestCollector_TriggerCoalesced(t *testing.T) {
	c := NewCollector(DefaultConfig(), prometheus.NewRegistry())

	c.TriggerCoalesced("joined")
	c.TriggerCoalesced("joined")
	c.TriggerCoalesced("queued")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.coalesced.WithLabelValues("joined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.coalesced.WithLabelValues("queued")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(Config{Namespace: "test"}, reg)
	c.TriggerCoalesced("joined")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_triggers_coalesced_total{reason="joined"} 1`))
}

func TestNewReporterFromParams(t *testing.T) {
	res := NewReporterFromParams(Params{})
	assert.IsType(t, &Collector{}, res.Reporter)
	assert.NotNil(t, res.Gatherer)

	cfg := config.NewConfig()
	cfg.Telemetry.Metrics = false
	res = NewReporterFromParams(Params{UnifiedCfg: cfg})
	assert.IsType(t, NoopReporter{}, res.Reporter)
}
