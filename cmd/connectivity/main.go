// Package main 提供 connectivity 命令行入口
//
// 两种运行方式：
//
//	connectivity -once            # 检查一次，连通时退出码 0，否则 1
//	connectivity -serve :9180     # 持续观察，并提供状态 HTTP 服务
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	connectivity "github.com/dep2p/go-connectivity"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
)

var logger = log.Logger("cmd/connectivity")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」怎么跑）
//   配置文件：持久化配置（目标列表、校验方式、轮询策略）
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 运行方式
	// ─────────────────────────────────────────────────────────────────────
	once       = flag.Bool("once", false, "检查一次后退出（连通时退出码 0）")
	jsonOutput = flag.Bool("json", false, "以 JSON 输出结论与状态变更")

	// ─────────────────────────────────────────────────────────────────────
	// 配置来源
	// ─────────────────────────────────────────────────────────────────────
	configFile = flag.String("config", "", "配置文件路径（.json / .yaml）")
	preset     = flag.String("preset", "desktop", "预设配置 (mobile/desktop/server/minimal)")

	// ─────────────────────────────────────────────────────────────────────
	// 探测覆盖
	// ─────────────────────────────────────────────────────────────────────
	targets   = flag.String("targets", "", "探测地址（逗号分隔）")
	threshold = flag.Float64("threshold", 0, "成功阈值百分比（0 = 使用配置）")
	poll      = flag.Duration("poll", 0, "轮询间隔（0 = 使用配置）")

	// ─────────────────────────────────────────────────────────────────────
	// 服务
	// ─────────────────────────────────────────────────────────────────────
	serveAddr   = flag.String("serve", "", "状态 HTTP 服务监听地址")
	journalPath = flag.String("journal", "", "状态变更记录文件（SQLite）")

	// ─────────────────────────────────────────────────────────────────────
	// 日志与信息
	// ─────────────────────────────────────────────────────────────────────
	logLevel    = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
	logFile     = flag.String("log", "", "日志文件路径（默认 stderr）")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(2)
	}
	os.Exit(code)
}

func run() (int, error) {
	flag.Parse()

	if *showVersion {
		fmt.Println(connectivity.VersionInfo())
		return 0, nil
	}

	closeLog, err := setupLogging()
	if err != nil {
		return 0, err
	}
	defer closeLog()

	opts, err := buildOptions()
	if err != nil {
		return 0, fmt.Errorf("配置错误: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		return checkOnce(ctx, opts)
	}
	return 0, watch(ctx, opts)
}

// checkOnce 单次检查
func checkOnce(ctx context.Context, opts []connectivity.Option) (int, error) {
	v, err := connectivity.Check(ctx, opts...)
	if err != nil {
		return 0, err
	}

	if *jsonOutput {
		if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
			return 0, err
		}
	} else {
		fmt.Printf("%s (%d/%d)\n", v.Status, v.Result.Successes, v.Result.Total)
	}

	if v.Status.IsConnected() {
		return 0, nil
	}
	return 1, nil
}

// watch 持续观察直到收到 SIGINT/SIGTERM，SIGHUP 触发重新检查
func watch(ctx context.Context, opts []connectivity.Option) error {
	m, err := connectivity.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	report := func(c connectivity.StatusChange) {
		printChange(c)
		logger.Info("状态变更",
			"previous", c.Previous,
			"current", c.Current,
			"successes", c.Successes,
			"total", c.Total)
	}
	m.OnConnected(report)
	m.OnDisconnected(report)

	logger.Info("开始观察",
		"version", connectivity.Version,
		"targets", len(m.Targets()))
	if addr := m.StatusAPIAddr(); addr != "" {
		fmt.Fprintf(os.Stderr, "状态服务: http://%s/status\n", addr)
	}

	return m.Run(ctx)
}

// printChange 输出一次状态变更
func printChange(c connectivity.StatusChange) {
	if *jsonOutput {
		_ = json.NewEncoder(os.Stdout).Encode(c)
		return
	}
	fmt.Printf("%s  %s -> %s (%d/%d)\n",
		c.Timestamp.Format(time.RFC3339), c.Previous, c.Current, c.Successes, c.Total)
}

// buildOptions 构建选项
//
// 优先级（从高到低）：命令行参数、环境变量、配置文件、预设。
func buildOptions() ([]connectivity.Option, error) {
	env := readEnv()

	presetName := *preset
	if env.preset != "" && !isFlagSet("preset") {
		presetName = env.preset
	}
	p, err := connectivity.PresetByName(presetName)
	if err != nil {
		return nil, err
	}
	opts := []connectivity.Option{connectivity.WithPreset(p)}

	// 配置文件整体替换预设
	path := *configFile
	if path == "" {
		path = env.configFile
	}
	if path != "" {
		opts = append(opts, connectivity.WithConfigFile(path))
	}

	urls := splitAndTrim(*targets, ",")
	if len(urls) == 0 {
		urls = env.targets
	}
	if len(urls) > 0 {
		opts = append(opts, connectivity.WithTargets(urls...))
	}

	if *threshold > 0 {
		opts = append(opts, connectivity.WithSuccessThreshold(*threshold))
	}
	if *poll > 0 {
		opts = append(opts, connectivity.WithPolling(*poll))
	}
	if env.bearerToken != "" {
		opts = append(opts, connectivity.WithBearerToken(env.bearerToken))
	}

	// 单次检查不需要服务
	if *once {
		return opts, nil
	}
	if *serveAddr != "" {
		opts = append(opts, connectivity.WithStatusAPI(*serveAddr))
	}
	if *journalPath != "" {
		opts = append(opts, connectivity.WithJournal(*journalPath))
	}
	return opts, nil
}

// setupLogging 设置日志级别与输出
func setupLogging() (func(), error) {
	if *logLevel != "" {
		level, ok := log.ParseLevel(*logLevel)
		if !ok {
			return nil, fmt.Errorf("未知日志级别 %q", *logLevel)
		}
		log.SetLevel(level)
	}

	if *logFile == "" {
		return func() {}, nil
	}
	file, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // G304: 用户指定的日志路径
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	log.SetOutput(file)
	return func() { _ = file.Close() }, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// splitAndTrim 分割字符串并去除空白
func splitAndTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
