// Package statusapi 提供连通性状态的 HTTP 接口
//
// 路由：
//
//	GET  /status       当前状态快照
//	POST /check        立即执行一次检查
//	GET  /events       websocket，推送 types.EvtStatusChanged
//	GET  /transitions  最近的状态变更（启用 journal 时）
//	GET  /metrics      Prometheus 指标（启用 metrics 时）
package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/core/eventbus"
	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/lib/log"
	"github.com/dep2p/go-connectivity/pkg/types"
)

var logger = log.Logger("app/statusapi")

const (
	checkTimeout      = 30 * time.Second
	wsWriteTimeout    = 5 * time.Second
	defaultTransLimit = 50
	maxTransLimit     = 1000
)

// ErrAlreadyStarted 服务已启动
var ErrAlreadyStarted = errors.New("status api already started")

// StatusSource 状态来源，由 *engine.Engine 实现
type StatusSource interface {
	Status() types.Status
	IsRunning() bool
	CurrentInterface() (types.Interface, bool)
	AvailableInterfaces() []types.Interface
	LastResult() (types.RoundResult, bool)
	Targets() []types.ProbeTarget
	CheckOnce(ctx context.Context) (types.Verdict, error)
}

// TransitionSource 状态变更历史，由 *journal.Journal 实现
type TransitionSource interface {
	Recent(ctx context.Context, n int) ([]journal.Entry, error)
}

// ============================================================================
//                              Server
// ============================================================================

// Server 状态 HTTP 服务
type Server struct {
	source   StatusSource
	bus      interfaces.EventBus
	history  TransitionSource
	gatherer prometheus.Gatherer

	upgrader websocket.Upgrader
	handler  http.Handler

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	conns    map[*websocket.Conn]struct{}
	closing  chan struct{}
}

// Option 服务选项
type Option func(*Server)

// WithEventBus 启用 /events
func WithEventBus(bus interfaces.EventBus) Option {
	return func(s *Server) { s.bus = bus }
}

// WithHistory 启用 /transitions
func WithHistory(h TransitionSource) Option {
	return func(s *Server) { s.history = h }
}

// WithGatherer 启用 /metrics
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New 创建服务（不监听）
func New(source StatusSource, opts ...Option) *Server {
	s := &Server{
		source:  source,
		conns:   make(map[*websocket.Conn]struct{}),
		closing: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /check", s.handleCheck)
	if s.bus != nil {
		mux.HandleFunc("GET /events", s.handleEvents)
	}
	if s.history != nil {
		mux.HandleFunc("GET /transitions", s.handleTransitions)
	}
	if s.gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(s.gatherer))
	}
	s.handler = mux
	return s
}

// Handler 返回路由，供测试或嵌入其他服务
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start 监听 addr 并在后台提供服务
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv := s.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("状态服务异常退出", "err", err)
		}
	}()

	logger.Info("状态服务已启动", "addr", ln.Addr().String())
	return nil
}

// Addr 实际监听地址，未启动时为空
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown 关闭 websocket 连接并优雅停止 HTTP 服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	select {
	case <-s.closing:
	default:
		close(s.closing)
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ============================================================================
//                              处理函数
// ============================================================================

type statusResponse struct {
	Status     types.Status       `json:"status"`
	Connected  bool               `json:"connected"`
	Running    bool               `json:"running"`
	Interface  *types.Interface   `json:"interface,omitempty"`
	Interfaces []types.Interface  `json:"interfaces"`
	Targets    []string           `json:"targets"`
	LastResult *types.RoundResult `json:"last_result,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.source.Status()
	resp := statusResponse{
		Status:     status,
		Connected:  status.IsConnected(),
		Running:    s.source.IsRunning(),
		Interfaces: s.source.AvailableInterfaces(),
	}
	if resp.Interfaces == nil {
		resp.Interfaces = []types.Interface{}
	}
	if iface, ok := s.source.CurrentInterface(); ok {
		resp.Interface = &iface
	}
	for _, t := range s.source.Targets() {
		resp.Targets = append(resp.Targets, t.URL)
	}
	if last, ok := s.source.LastResult(); ok {
		resp.LastResult = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	v, err := s.source.CheckOnce(ctx)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultTransLimit)

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sub, err := s.bus.Subscribe(new(types.EvtStatusChanged), eventbus.Name("statusapi/events"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade 已写入错误响应
		return
	}
	if !s.track(conn) {
		_ = conn.Close()
		return
	}
	defer s.untrack(conn)

	// 读循环只用于发现对端关闭
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-s.closing:
			return
		case raw, ok := <-sub.Out():
			if !ok {
				return
			}
			evt, ok := raw.(types.EvtStatusChanged)
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(evt); err != nil {
				logger.Debug("推送状态事件失败", "err", err)
				return
			}
		}
	}
}

func (s *Server) track(c *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.closing:
		return false
	default:
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	_ = c.Close()
}

// ============================================================================
//                              辅助函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > maxTransLimit {
		return maxTransLimit
	}
	return n
}
