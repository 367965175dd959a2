package engine

import "errors"

var (
	// ErrObserverSubscribe 订阅接口变化失败，引擎保持 Idle
	ErrObserverSubscribe = errors.New("failed to subscribe to interface changes")

	// ErrNilObserver 未提供接口观察者
	ErrNilObserver = errors.New("nil interface observer")

	// ErrNilProber 未提供探测调度器
	ErrNilProber = errors.New("nil prober")

	// ErrClosed 引擎已关闭
	ErrClosed = errors.New("engine closed")
)
