package connectivity

import (
	"errors"

	"github.com/dep2p/go-connectivity/internal/core/engine"
	"github.com/dep2p/go-connectivity/internal/core/validator"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrClosed Monitor 已关闭
	ErrClosed = engine.ErrClosed

	// ErrObserverSubscribe 无法订阅接口变化，Monitor 保持 Idle
	ErrObserverSubscribe = engine.ErrObserverSubscribe

	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrCustomValidatorRequired custom 模式未提供校验器
	ErrCustomValidatorRequired = validator.ErrCustomValidatorRequired

	// ErrUnknownPreset 未知的预设名称
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrNilOption 选项参数为 nil
	ErrNilOption = errors.New("nil option argument")
)
