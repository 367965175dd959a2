package main

import "os"

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

// 环境变量名
const (
	envPrefix      = "CONNECTIVITY_"
	envPreset      = envPrefix + "PRESET"
	envConfigFile  = envPrefix + "CONFIG"
	envTargets     = envPrefix + "TARGETS"
	envBearerToken = envPrefix + "BEARER_TOKEN"
)

// envConfig 从环境变量读取的覆盖项
type envConfig struct {
	preset      string
	configFile  string
	targets     []string
	bearerToken string
}

// readEnv 读取环境变量
//
// 环境变量优先级高于配置文件，低于命令行参数。
func readEnv() envConfig {
	return envConfig{
		preset:      os.Getenv(envPreset),
		configFile:  os.Getenv(envConfigFile),
		targets:     splitAndTrim(os.Getenv(envTargets), ","),
		bearerToken: os.Getenv(envBearerToken),
	}
}
