package observer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
)

var logger = log.Logger("core/observer")

// Framework 观察者实现选择
type Framework string

const (
	// FrameworkAuto 优先原生，不可用时轮询
	FrameworkAuto Framework = "auto"
	// FrameworkNative 平台原生实现（Linux netlink）
	FrameworkNative Framework = "native"
	// FrameworkPolling 轮询
	FrameworkPolling Framework = "polling"
	// FrameworkStatic 启动时的接口快照，不发出事件
	FrameworkStatic Framework = "static"
	// FrameworkNone 不观察接口变化
	FrameworkNone Framework = "none"
)

// ParseFramework 解析框架名称，空字符串视为 auto
func ParseFramework(s string) (Framework, error) {
	switch f := Framework(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FrameworkAuto, nil
	case FrameworkAuto, FrameworkNative, FrameworkPolling, FrameworkStatic, FrameworkNone:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
	}
}

// DefaultPollInterval 轮询观察者默认间隔
const DefaultPollInterval = 5 * time.Second

// New 按配置创建观察者
func New(cfg *Config, clk clock.Clock) (interfaces.InterfaceObserver, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg.Validate()

	fw, err := ParseFramework(string(cfg.Framework))
	if err != nil {
		return nil, err
	}

	switch fw {
	case FrameworkNative:
		return newNativeObserver()

	case FrameworkAuto:
		native, err := newNativeObserver()
		if err == nil {
			return native, nil
		}
		if !errors.Is(err, ErrNativeUnsupported) {
			return nil, err
		}
		logger.Debug("原生观察者不可用，回退到轮询", "err", err)
		return NewPollingObserver(cfg.PollInterval, clk), nil

	case FrameworkPolling:
		return NewPollingObserver(cfg.PollInterval, clk), nil

	case FrameworkStatic:
		state, _ := defaultScanner().snapshot()
		return NewStaticObserver(state), nil

	default:
		return NewNoOpObserver(), nil
	}
}
