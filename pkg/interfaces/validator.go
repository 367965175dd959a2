// Package interfaces 定义 go-connectivity 的公共接口
//
// 本文件定义响应校验接口。
package interfaces

import (
	"github.com/dep2p/go-connectivity/pkg/types"
)

// ResponseValidator 判断单个探测响应是否证明互联网可达
//
// 实现必须是纯函数：不得修改 resp，不得 panic。
type ResponseValidator interface {
	IsValid(target types.ProbeTarget, resp *Response) bool
}

// ResponseValidatorFunc 函数适配器
type ResponseValidatorFunc func(target types.ProbeTarget, resp *Response) bool

// IsValid 实现 ResponseValidator
func (f ResponseValidatorFunc) IsValid(target types.ProbeTarget, resp *Response) bool {
	return f(target, resp)
}
