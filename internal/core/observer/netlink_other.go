//go:build !linux

package observer

import (
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// newNativeObserver 非 Linux 平台没有原生实现，调用方回退到轮询
func newNativeObserver() (interfaces.InterfaceObserver, error) {
	return nil, ErrNativeUnsupported
}
