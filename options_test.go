package connectivity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dep2p/go-connectivity/config"
)

func applied(t *testing.T, opts ...Option) *options {
	t.Helper()
	o := newOptions()
	require.NoError(t, o.apply(opts...))
	return o
}

func TestOptions_Probe(t *testing.T) {
	o := applied(t,
		WithTargets("https://a.example/", "https://b.example/"),
		WithHTTPSOnly(false),
		WithSuccessThreshold(75),
		WithTimeout(3*time.Second),
		WithBearerToken("tok"),
	)

	require.Len(t, o.cfg.Probe.Targets, 2)
	assert.Equal(t, "https://b.example/", o.cfg.Probe.Targets[1].URL)
	assert.False(t, o.cfg.Probe.HTTPSOnly)
	assert.Equal(t, 75.0, o.cfg.Probe.SuccessThreshold)
	assert.Equal(t, 3*time.Second, o.cfg.Probe.Timeout.Duration())
	assert.Equal(t, "tok", o.cfg.Probe.BearerToken)

	o = applied(t, WithProbeTargets(ProbeTarget{URL: "https://c.example/", Authorization: "Basic x"}))
	require.Len(t, o.cfg.Probe.Targets, 1)
	assert.Equal(t, "Basic x", o.cfg.Probe.Targets[0].Authorization)
}

func TestOptions_Validation(t *testing.T) {
	o := applied(t, WithRegexPattern("ok[0-9]"))
	assert.Equal(t, "regex", o.cfg.Validation.Mode)
	assert.Equal(t, "ok[0-9]", o.cfg.Validation.Pattern)

	o = applied(t, WithValidationMode(ValidationEquals), WithExpectedResponse("pong"))
	assert.Equal(t, "equals", o.cfg.Validation.Mode)
	assert.Equal(t, "pong", o.cfg.Validation.Expected)

	o = applied(t, WithValidator(ResponseValidatorFunc(func(ProbeTarget, *Response) bool { return true })))
	assert.Equal(t, "custom", o.cfg.Validation.Mode)
	assert.NotNil(t, o.validator)
}

func TestOptions_PresetOrder(t *testing.T) {
	// 预设会覆盖之前的设置
	o := applied(t, WithHTTPSOnly(false), WithPreset(PresetServer))
	assert.True(t, o.cfg.Probe.HTTPSOnly)
	assert.True(t, o.cfg.Polling.Enabled)

	o = applied(t, WithPreset(PresetServer), WithPollWhileOfflineOnly(true))
	assert.True(t, o.cfg.Polling.OfflineOnly)

	require.Error(t, newOptions().apply(WithPreset(nil)))
}

func TestOptions_ConfigIsCopied(t *testing.T) {
	cfg := config.NewConfig()
	o := applied(t, WithConfig(cfg), WithTargets("https://only.example/"))

	assert.Len(t, o.cfg.Probe.Targets, 1)
	assert.Len(t, cfg.Probe.Targets, 2, "调用方的配置不被修改")
}

func TestOptions_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connectivity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
probe:
  targets:
    - url: https://file.example/
polling:
  enabled: true
  interval: 15s
`), 0o600))

	o := applied(t, WithConfigFile(path))
	require.Len(t, o.cfg.Probe.Targets, 1)
	assert.Equal(t, "https://file.example/", o.cfg.Probe.Targets[0].URL)
	assert.True(t, o.cfg.Polling.Enabled)
	assert.Equal(t, 15*time.Second, o.cfg.Polling.Interval.Duration())
}

func TestOptions_TriggersAndServices(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := applied(t,
		WithPolling(20*time.Second),
		WithRecheckLatency(time.Second),
		WithCheckOnResume(false),
		WithFramework("static"),
		WithMetricsRegistry(reg),
		WithTracerProvider(noop.NewTracerProvider()),
		WithJournal("/tmp/j.db"),
		WithStatusAPI(":9180"),
	)

	assert.True(t, o.cfg.Polling.Enabled)
	assert.Equal(t, 20*time.Second, o.cfg.Polling.Interval.Duration())
	assert.Equal(t, time.Second, o.cfg.Recheck.Latency.Duration())
	assert.False(t, o.cfg.Recheck.OnResume)
	assert.Equal(t, "static", o.cfg.Observer.Framework)
	assert.Same(t, reg, o.registry)
	assert.True(t, o.cfg.Telemetry.Metrics)
	assert.True(t, o.cfg.Telemetry.Tracing)
	assert.True(t, o.cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/j.db", o.cfg.Journal.Path)
	assert.True(t, o.cfg.API.Enabled)
	assert.Equal(t, ":9180", o.cfg.API.Addr)
}

func TestOptions_NilArguments(t *testing.T) {
	for name, opt := range map[string]Option{
		"config":    WithConfig(nil),
		"observer":  WithObserver(nil),
		"transport": WithTransport(nil),
		"validator": WithValidator(nil),
	} {
		assert.ErrorIs(t, newOptions().apply(opt), ErrNilOption, name)
	}
}
