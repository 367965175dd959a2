package eventbus

import "github.com/dep2p/go-connectivity/pkg/interfaces"

// BufSize 设置订阅缓冲区大小
func BufSize(size int) interfaces.SubscriptionOpt {
	return func(s *interfaces.SubscriptionSettings) {
		s.Buffer = size
	}
}

// Name 设置订阅者名称
func Name(name string) interfaces.SubscriptionOpt {
	return func(s *interfaces.SubscriptionSettings) {
		s.Name = name
	}
}

// Stateful 设置发射器为有状态模式
func Stateful() interfaces.EmitterOpt {
	return func(s *interfaces.EmitterSettings) {
		s.Stateful = true
	}
}
