package observer

import "errors"

var (
	// ErrNativeUnsupported 当前平台没有原生观察者
	ErrNativeUnsupported = errors.New("native interface observer not supported on this platform")

	// ErrUnknownFramework 未知的观察者框架
	ErrUnknownFramework = errors.New("unknown observer framework")

	// ErrNilCallback 订阅回调为空
	ErrNilCallback = errors.New("nil change callback")
)
