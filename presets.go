package connectivity

import (
	"fmt"
	"time"

	"github.com/dep2p/go-connectivity/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetNameMobile 移动端预设名称
	PresetNameMobile = "mobile"

	// PresetNameDesktop 桌面端预设名称
	PresetNameDesktop = "desktop"

	// PresetNameServer 服务器预设名称
	PresetNameServer = "server"

	// PresetNameMinimal 最小预设名称
	PresetNameMinimal = "minimal"
)

// Preset 预设配置
type Preset struct {
	// Name 预设名称
	Name string

	build func() *config.Config
}

// Config 返回该预设的一份新配置
func (p *Preset) Config() *config.Config {
	return p.build()
}

// 预设
var (
	PresetMobile  = &Preset{Name: PresetNameMobile, build: GetMobileConfig}
	PresetDesktop = &Preset{Name: PresetNameDesktop, build: GetDesktopConfig}
	PresetServer  = &Preset{Name: PresetNameServer, build: GetServerConfig}
	PresetMinimal = &Preset{Name: PresetNameMinimal, build: GetMinimalConfig}
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetMobileConfig 获取移动端配置
//
// 适用场景：手机、平板等频繁切换网络的设备
// 特点：
//   - 未连通时每 10s 轮询，便于从强制门户中恢复
//   - 接口变化后的延迟检查放宽到 1s，等待新接口完成配置
func GetMobileConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Polling.Enabled = true
	cfg.Polling.OfflineOnly = true
	cfg.Recheck.Latency = config.Duration(time.Second)
	return cfg
}

// GetDesktopConfig 获取桌面端配置
//
// 即默认配置：只在接口变化和恢复时检查，不轮询。
func GetDesktopConfig() *config.Config {
	return config.NewConfig()
}

// GetServerConfig 获取服务器配置
//
// 适用场景：常驻服务、监控探针
// 特点：
//   - 无论是否连通都每 30s 轮询
//   - 接口观察改为轮询实现，不依赖平台通知
func GetServerConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Polling.Enabled = true
	cfg.Polling.OfflineOnly = false
	cfg.Polling.Interval = config.Duration(30 * time.Second)
	cfg.Observer.Framework = "polling"
	return cfg
}

// GetMinimalConfig 获取最小配置
//
// 适用场景：测试环境、单次检查
// 特点：
//   - 不观察接口变化，不收集指标
//   - 单个请求超时缩短到 2s
func GetMinimalConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Observer.Framework = "none"
	cfg.Telemetry.Metrics = false
	cfg.Probe.Timeout = config.Duration(2 * time.Second)
	return cfg
}

// GetConfigByPreset 根据预设名称获取配置
//
// 如果名称未知，返回 ErrUnknownPreset。
func GetConfigByPreset(name string) (*config.Config, error) {
	p, err := PresetByName(name)
	if err != nil {
		return nil, err
	}
	return p.Config(), nil
}

// PresetByName 根据名称查找预设
func PresetByName(name string) (*Preset, error) {
	switch name {
	case PresetNameMobile:
		return PresetMobile, nil
	case PresetNameDesktop, "":
		return PresetDesktop, nil
	case PresetNameServer:
		return PresetServer, nil
	case PresetNameMinimal:
		return PresetMinimal, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              预设信息
// ════════════════════════════════════════════════════════════════════════════

// PresetInfo 预设信息
type PresetInfo struct {
	// Name 预设名称
	Name string

	// Description 预设描述
	Description string

	// UseCase 适用场景
	UseCase string
}

// AvailablePresets 返回所有可用预设的信息
func AvailablePresets() []PresetInfo {
	return []PresetInfo{
		{
			Name:        PresetNameMobile,
			Description: "未连通时轮询，接口变化后延迟 1s 检查",
			UseCase:     "手机、平板、频繁切换网络的设备",
		},
		{
			Name:        PresetNameDesktop,
			Description: "默认配置，只在接口变化与恢复时检查",
			UseCase:     "桌面应用",
		},
		{
			Name:        PresetNameServer,
			Description: "持续轮询，轮询式接口观察",
			UseCase:     "常驻服务、监控探针",
		},
		{
			Name:        PresetNameMinimal,
			Description: "不观察接口、不收集指标",
			UseCase:     "测试、单次检查",
		},
	}
}
