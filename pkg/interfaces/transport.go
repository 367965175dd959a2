// Package interfaces 定义 go-connectivity 的公共接口
//
// 本文件定义 HTTP 传输接口。
package interfaces

import (
	"context"
	"net/http"

	"github.com/dep2p/go-connectivity/pkg/types"
)

// Response 探测响应
type Response struct {
	// StatusCode HTTP 状态码
	StatusCode int

	// Header 响应头
	Header http.Header

	// Body 响应体（已按上限截断）
	Body []byte
}

// ContentType 返回 Content-Type 头
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Transport 探测请求的传输层
//
// Fetch 必须遵守 ctx 的取消与超时；非 2xx 响应同样返回 Response，
// 由调用方决定是否视为失败。
type Transport interface {
	Fetch(ctx context.Context, target types.ProbeTarget) (*Response, error)
}
