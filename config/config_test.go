package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// TestNewConfig 测试默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50.0, cfg.Probe.SuccessThreshold)
	assert.Equal(t, 5*time.Second, cfg.Probe.Timeout.Duration())
	assert.True(t, cfg.Probe.HTTPSOnly)
	assert.False(t, cfg.Polling.Enabled)
	assert.True(t, cfg.Polling.OfflineOnly)
	assert.Equal(t, 10*time.Second, cfg.Polling.Interval.Duration())
	assert.Equal(t, 500*time.Millisecond, cfg.Recheck.Latency.Duration())
	assert.Equal(t, "Success", cfg.Validation.Expected)
	assert.Equal(t, ".*?<BODY>.*?Success.*?</BODY>.*", cfg.Validation.Pattern)

	targets := cfg.Probe.EffectiveTargets()
	require.Len(t, targets, 2)
	assert.Equal(t, DefaultProbeURL, targets[0].URL)
	assert.Equal(t, DefaultCaptiveProbeURL, targets[1].URL)
}

// TestProbeConfig 测试探测配置
func TestProbeConfig(t *testing.T) {
	t.Run("ClampThreshold", func(t *testing.T) {
		cfg := DefaultProbeConfig().WithThreshold(150)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 100.0, cfg.SuccessThreshold)

		cfg = DefaultProbeConfig().WithThreshold(-3)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 0.0, cfg.SuccessThreshold)
	})

	t.Run("FixTimeout", func(t *testing.T) {
		cfg := DefaultProbeConfig().WithTimeout(0)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 5*time.Second, cfg.Timeout.Duration())
	})

	t.Run("InvalidURL", func(t *testing.T) {
		cfg := DefaultProbeConfig().WithTargets("ftp://example.com", "https://ok.example")
		assert.Error(t, cfg.Validate())

		cfg = DefaultProbeConfig().WithTargets("not a url")
		assert.Error(t, cfg.Validate())
	})

	t.Run("HTTPSOnlyFilters", func(t *testing.T) {
		cfg := DefaultProbeConfig().WithTargets("http://plain.example", "https://secure.example")
		require.NoError(t, cfg.Validate())

		assert.Equal(t, []types.ProbeTarget{{URL: "https://secure.example"}}, cfg.EffectiveTargets())

		cfg.HTTPSOnly = false
		assert.Len(t, cfg.EffectiveTargets(), 2)
	})

	t.Run("AllFilteredIsEmpty", func(t *testing.T) {
		cfg := DefaultProbeConfig().WithTargets("http://plain.example")
		assert.Empty(t, cfg.EffectiveTargets())
	})
}

// TestValidationConfig 测试校验配置
func TestValidationConfig(t *testing.T) {
	cfg := DefaultValidationConfig()
	mode, err := cfg.ParsedMode()
	require.NoError(t, err)
	assert.Equal(t, types.ValidationContains, mode)

	cfg.Mode = "regex"
	cfg.Pattern = "(unclosed"
	assert.NoError(t, cfg.Validate(), "无效正则在运行时按失败处理")

	cfg.Mode = "fuzzy"
	assert.Error(t, cfg.Validate())
}

// TestObserverConfig 测试观察者配置
func TestObserverConfig(t *testing.T) {
	cfg := ObserverConfig{Framework: " Polling "}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "polling", cfg.Framework)
	assert.Equal(t, 5*time.Second, cfg.PollInterval.Duration())

	cfg.Framework = "bluetooth"
	assert.Error(t, cfg.Validate())
}

// TestAPIAndJournalConfig 测试服务与日志配置
func TestAPIAndJournalConfig(t *testing.T) {
	api := DefaultAPIConfig()
	api.Enabled = true
	api.Addr = "localhost"
	assert.Error(t, api.Validate())

	j := DefaultJournalConfig()
	j.Enabled = true
	j.Path = ""
	assert.Error(t, j.Validate())
}

// TestLoad 测试文件加载
func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "c.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"probe": {"success_threshold": 75, "timeout": "2s", "targets": [{"url": "https://a.example"}]},
			"polling": {"enabled": true, "interval": 30000000000}
		}`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 75.0, cfg.Probe.SuccessThreshold)
		assert.Equal(t, 2*time.Second, cfg.Probe.Timeout.Duration())
		assert.True(t, cfg.Polling.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Polling.Interval.Duration())
		assert.True(t, cfg.Polling.OfflineOnly, "未出现的字段保留默认值")
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "c.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
probe:
  https_only: false
  targets:
    - url: http://a.example
      authorization: Basic abc
validation:
  mode: equals
recheck:
  latency: 1s
observer:
  framework: static
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.False(t, cfg.Probe.HTTPSOnly)
		assert.Equal(t, "Basic abc", cfg.Probe.Targets[0].Authorization)
		assert.Equal(t, time.Second, cfg.Recheck.Latency.Duration())
		assert.Equal(t, "static", cfg.Observer.Framework)

		mode, err := cfg.Validation.ParsedMode()
		require.NoError(t, err)
		assert.Equal(t, types.ValidationEquals, mode)
	})

	t.Run("UnknownExtension", func(t *testing.T) {
		path := filepath.Join(dir, "c.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

// TestDurations 测试 Duration 编解码
func TestDurations(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.NoError(t, d.UnmarshalJSON([]byte(`1000`)))
	assert.Equal(t, time.Microsecond, d.Duration())

	assert.Error(t, d.UnmarshalJSON([]byte(`"soon"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))

	out, err := Duration(500 * time.Millisecond).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"500ms"`, string(out))
}

// TestClone 测试深拷贝
func TestClone(t *testing.T) {
	cfg := NewConfig()
	clone := cfg.Clone()
	clone.Probe.Targets[0].URL = "https://changed.example"

	assert.Equal(t, DefaultProbeURL, cfg.Probe.Targets[0].URL)
}
