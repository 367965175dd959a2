package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("core/transport")

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidTarget 目标地址无效
	ErrInvalidTarget = errors.New("invalid probe target")
)

// ============================================================================
//                              HTTPTransport
// ============================================================================

// HTTPTransport 基于 net/http 的探测传输
type HTTPTransport struct {
	config *Config
	client *http.Client
	base   *http.Transport
}

var _ interfaces.Transport = (*HTTPTransport)(nil)

// New 创建传输
//
// 每次调用都会创建新的连接池，不复用 http.DefaultTransport。
func New(config *Config) *HTTPTransport {
	if config == nil {
		config = NewConfig()
	}
	config.Validate()

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.DisableKeepAlives = config.DisableKeepAlives
	base.ResponseHeaderTimeout = config.Timeout

	var rt http.RoundTripper = base
	if !config.DisableTracing {
		opts := []otelhttp.Option{
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "probe " + r.URL.Host
			}),
		}
		if config.TracerProvider != nil {
			opts = append(opts, otelhttp.WithTracerProvider(config.TracerProvider))
		}
		rt = otelhttp.NewTransport(base, opts...)
	}

	return &HTTPTransport{
		config: config,
		base:   base,
		client: &http.Client{
			Transport: rt,
			Timeout:   config.Timeout,
		},
	}
}

// Fetch 请求目标并读取响应体
func (t *HTTPTransport) Fetch(ctx context.Context, target types.ProbeTarget) (*interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, target.URL, err)
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if t.config.UserAgent != "" {
		req.Header.Set("User-Agent", t.config.UserAgent)
	}
	if auth := t.authorization(target); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.config.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	logger.Debug("探测响应",
		"url", target.URL,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	return &interfaces.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Close 释放空闲连接
func (t *HTTPTransport) Close() error {
	t.base.CloseIdleConnections()
	return nil
}

// authorization 计算请求的 Authorization 头
func (t *HTTPTransport) authorization(target types.ProbeTarget) string {
	switch {
	case target.Authorization != "":
		return target.Authorization
	case t.config.Authorization != "":
		return t.config.Authorization
	case t.config.BearerToken != "":
		return "Bearer " + t.config.BearerToken
	default:
		return ""
	}
}
