package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-connectivity/internal/app/journal"
	"github.com/dep2p/go-connectivity/internal/core/eventbus"
	"github.com/dep2p/go-connectivity/internal/core/metrics"
	"github.com/dep2p/go-connectivity/pkg/types"
)

type fakeSource struct {
	status   types.Status
	running  bool
	iface    types.Interface
	hasIface bool
	last     *types.RoundResult
	verdict  *types.Verdict
	checkErr error
}

func (f *fakeSource) Status() types.Status { return f.status }
func (f *fakeSource) IsRunning() bool      { return f.running }

func (f *fakeSource) CurrentInterface() (types.Interface, bool) { return f.iface, f.hasIface }

func (f *fakeSource) AvailableInterfaces() []types.Interface {
	if !f.hasIface {
		return nil
	}
	return []types.Interface{f.iface}
}

func (f *fakeSource) LastResult() (types.RoundResult, bool) {
	if f.last == nil {
		return types.RoundResult{}, false
	}
	return *f.last, true
}

func (f *fakeSource) Targets() []types.ProbeTarget {
	return types.TargetsFromURLs("https://a.example/ok")
}

func (f *fakeSource) CheckOnce(context.Context) (types.Verdict, error) {
	if f.checkErr != nil {
		return types.Verdict{}, f.checkErr
	}
	if f.verdict != nil {
		return *f.verdict, nil
	}
	return types.Verdict{
		Status: types.StatusConnectedViaEthernet,
		Result: types.RoundResult{RoundID: "r9", Successes: 2, Total: 2},
	}, nil
}

type fakeHistory struct{ entries []journal.Entry }

func (h *fakeHistory) Recent(_ context.Context, n int) ([]journal.Entry, error) {
	if n < len(h.entries) {
		return h.entries[:n], nil
	}
	return h.entries, nil
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// ============================================================================
//                              /status /check
// ============================================================================

func TestStatus(t *testing.T) {
	src := &fakeSource{
		status:   types.StatusConnectedViaWiFi,
		running:  true,
		iface:    types.InterfaceWiFi,
		hasIface: true,
		last:     &types.RoundResult{RoundID: "r1", Successes: 2, Total: 2},
	}
	srv := httptest.NewServer(New(src).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]any
	decode(t, resp, &body)

	assert.Equal(t, "connected_via_wifi", body["status"])
	assert.Equal(t, true, body["connected"])
	assert.Equal(t, true, body["running"])
	assert.Equal(t, "wifi", body["interface"])
	assert.Equal(t, []any{"wifi"}, body["interfaces"])
	assert.Equal(t, []any{"https://a.example/ok"}, body["targets"])
	require.Contains(t, body, "last_result")
}

func TestStatus_BeforeFirstRound(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)

	var body map[string]any
	decode(t, resp, &body)

	assert.Equal(t, "determining", body["status"])
	assert.Equal(t, []any{}, body["interfaces"])
	assert.NotContains(t, body, "interface")
	assert.NotContains(t, body, "last_result")
}

func TestStatusAndCheck_OmitCredentials(t *testing.T) {
	const token = "Bearer s3cr3t-token"
	target := types.ProbeTarget{URL: "https://a.example/ok", Authorization: token}
	result := types.RoundResult{
		RoundID:   "r1",
		Successes: 1,
		Total:     1,
		Outcomes:  []types.ProbeOutcome{{Target: target, Success: true, StatusCode: http.StatusOK}},
	}
	src := &fakeSource{
		status:  types.StatusConnectedViaWiFi,
		last:    &result,
		verdict: &types.Verdict{Status: types.StatusConnectedViaWiFi, Result: result},
	}
	srv := httptest.NewServer(New(src).Handler())
	defer srv.Close()

	readAll := func(resp *http.Response) string {
		t.Helper()
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	body := readAll(resp)
	assert.Contains(t, body, "https://a.example/ok")
	assert.NotContains(t, body, "s3cr3t")

	resp, err = http.Post(srv.URL+"/check", "application/json", nil)
	require.NoError(t, err)
	body = readAll(resp)
	assert.Contains(t, body, "https://a.example/ok")
	assert.NotContains(t, body, "s3cr3t")
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{}).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/check", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var v types.Verdict
	decode(t, resp, &v)
	assert.Equal(t, types.StatusConnectedViaEthernet, v.Status)
	assert.Equal(t, "r9", v.Result.RoundID)
}

func TestCheck_Error(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{checkErr: errors.New("engine closed")}).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/check", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCheck_WrongMethod(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/check")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// ============================================================================
//                              可选路由
// ============================================================================

func TestOptionalRoutesDisabled(t *testing.T) {
	srv := httptest.NewServer(New(&fakeSource{}).Handler())
	defer srv.Close()

	for _, path := range []string{"/events", "/transitions", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestTransitions(t *testing.T) {
	h := &fakeHistory{entries: []journal.Entry{
		{ID: 2, RoundID: "r2", Previous: types.StatusConnected, Current: types.StatusNotConnected},
		{ID: 1, RoundID: "r1", Previous: types.StatusDetermining, Current: types.StatusConnected},
	}}
	srv := httptest.NewServer(New(&fakeSource{}, WithHistory(h)).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/transitions?limit=1")
	require.NoError(t, err)

	var entries []journal.Entry
	decode(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "r2", entries[0].RoundID)
	assert.Equal(t, types.StatusNotConnected, entries[0].Current)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(metrics.DefaultConfig(), reg)
	c.StatusChanged(types.StatusDetermining, types.StatusConnected)

	srv := httptest.NewServer(New(&fakeSource{}, WithGatherer(reg)).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "connectivity_status")
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", defaultTransLimit},
		{"limit=7", 7},
		{"limit=-1", defaultTransLimit},
		{"limit=abc", defaultTransLimit},
		{"limit=999999", maxTransLimit},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/transitions?"+tt.query, nil)
		assert.Equal(t, tt.want, parseLimit(r, defaultTransLimit), tt.query)
	}
}

// ============================================================================
//                              /events
// ============================================================================

func TestEvents_StreamsStatusChanges(t *testing.T) {
	bus := eventbus.NewBus()
	defer bus.Close()

	em, err := bus.Emitter(new(types.EvtStatusChanged))
	require.NoError(t, err)

	s := New(&fakeSource{}, WithEventBus(bus))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, em.Emit(types.EvtStatusChanged{
		Previous: types.StatusDetermining,
		Current:  types.StatusConnectedViaCellular,
		RoundID:  "r1",
	}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt types.EvtStatusChanged
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, types.StatusConnectedViaCellular, evt.Current)
	assert.Equal(t, "r1", evt.RoundID)
}

func TestServer_StartAndShutdown(t *testing.T) {
	bus := eventbus.NewBus()
	defer bus.Close()

	s := New(&fakeSource{status: types.StatusNotConnected}, WithEventBus(bus))
	require.NoError(t, s.Start("127.0.0.1:0"))
	assert.ErrorIs(t, s.Start("127.0.0.1:0"), ErrAlreadyStarted)

	addr := s.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/events", nil)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	// 关闭后 websocket 连接也被关闭
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
