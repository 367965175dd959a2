// Package log 提供 go-connectivity 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，每个组件通过 Logger(component) 获取
// LazyLogger，级别与格式由 internal/util/logger 的子系统配置决定。
package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/dep2p/go-connectivity/internal/util/logger"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// SetOutput 设置日志输出目标
//
// 示例：
//
//	file, _ := os.OpenFile("connectivity.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel 设置所有组件的日志级别
func SetLevel(level slog.Level) {
	logger.SetGlobalLevel(level)
}

// SetComponentLevel 设置单个组件的日志级别
func SetComponentLevel(component string, level slog.Level) {
	logger.SetLevel(component, level)
}

// ParseLevel 解析级别名称（debug/info/warn/error）
func ParseLevel(name string) (slog.Level, bool) {
	return logger.ParseLevel(name)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 包级变量初始化时不创建 handler，首次写日志时才解析子系统配置，
// 因此 main 中对级别和输出的设置对所有组件生效。
//
// 使用方式：
//
//	var logger = log.Logger("core/engine")
//	logger.Info("hello", "key", value)
type LazyLogger struct {
	component string
}

func (l *LazyLogger) get() *slog.Logger {
	return logger.Logger(l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.get().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.get().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.get().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.get().Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.get().DebugContext(ctx, msg, args...)
}

// InfoContext 带 context 的 Info 日志
func (l *LazyLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.get().InfoContext(ctx, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.get().WarnContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.get().With(args...)
}

// Enabled 检查级别是否启用
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return l.get().Enabled(context.Background(), level)
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}
