// Package logger 提供按子系统分级的日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（CONNECTIVITY_LOG_LEVEL, CONNECTIVITY_LOG_FORMAT）
//   - 运行时调整级别与输出目标
//
// 业务代码通常不直接使用本包，而是通过 pkg/lib/log 的 LazyLogger：
//
//	var logger = log.Logger("core/engine")
//	logger.Info("状态变更", "previous", prev, "current", cur)
//
// 环境变量配置:
//
//	# 全部 info，engine 子系统 debug
//	CONNECTIVITY_LOG_LEVEL=engine=debug,info
//
//	# JSON 输出
//	CONNECTIVITY_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler

	// levelOverride SetGlobalLevel 设置后，新建的 logger 也使用该级别
	levelOverride   *slog.Level
	levelOverrideMu sync.RWMutex
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	level := cfg.LevelForSubsystem(subsystem)

	levelOverrideMu.RLock()
	if levelOverride != nil {
		level = *levelOverride
	}
	levelOverrideMu.RUnlock()

	handler := newHandler(subsystem, level, cfg)
	actual, loaded := loggers.LoadOrStore(subsystem, slog.New(handler))
	if !loaded {
		handlers.Store(subsystem, handler)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).SetLevel(level)
	}
}

// SetGlobalLevel 设置所有子系统的日志级别（包括之后创建的子系统）
func SetGlobalLevel(level slog.Level) {
	levelOverrideMu.Lock()
	levelOverride = &level
	levelOverrideMu.Unlock()

	handlers.Range(func(_, value any) bool {
		value.(*subsystemHandler).SetLevel(level)
		return true
	})
}

// Discard 返回一个丢弃所有日志的 Logger
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 同样会输出到新的目标。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
