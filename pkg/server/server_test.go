package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/protocol"
	"github.com/vango-dev/sortable/pkg/sortable"
)

const itemHeight = 20

type harness struct {
	t    *testing.T
	srv  *Server
	ts   *httptest.Server
	conn *websocket.Conn
	seq  uint64
}

func newHarness(t *testing.T, items []string, opts ...sortable.Option) *harness {
	t.Helper()
	return newHarnessConfig(t, &Config{Items: items, Options: opts})
}

func newHarnessConfig(t *testing.T, cfg *Config) *harness {
	t.Helper()
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = time.Hour
	}
	srv := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	h := &harness{t: t, srv: srv, ts: ts}
	h.conn = h.dial()
	return h
}

func (h *harness) dial() *websocket.Conn {
	h.t.Helper()
	url := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { conn.Close() })
	return conn
}

func (h *harness) send(ft protocol.FrameType, payload []byte) {
	h.t.Helper()
	data, err := protocol.NewFrame(ft, payload).Encode()
	require.NoError(h.t, err)
	require.NoError(h.t, h.conn.WriteMessage(websocket.BinaryMessage, data))
}

func (h *harness) event(t protocol.EventType, hid string, x, y int) {
	h.t.Helper()
	h.seq++
	h.send(protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{
		Seq:     h.seq,
		Type:    t,
		HID:     hid,
		Payload: &protocol.DragEventData{ClientX: x, ClientY: y},
	}))
}

// layout reports a vertical list of 100x20 boxes.
func (h *harness) layout(n int) {
	h.t.Helper()
	rects := make([]protocol.ElementRect, n)
	for i := range rects {
		rects[i] = protocol.ElementRect{
			HID:  "i" + strconv.Itoa(i),
			Rect: dom.Rect{X: 0, Y: float64(i * itemHeight), Width: 100, Height: itemHeight},
		}
	}
	h.seq++
	h.send(protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{
		Seq: h.seq, Type: protocol.EventLayout, Payload: &protocol.LayoutEventData{Rects: rects},
	}))
}

func (h *harness) read() *protocol.Frame {
	h.t.Helper()
	h.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := h.conn.ReadMessage()
	require.NoError(h.t, err)
	f, err := protocol.DecodeFrame(msg)
	require.NoError(h.t, err)
	return f
}

// patches reads patch frames up to and including the final one.
func (h *harness) patches() []protocol.Patch {
	h.t.Helper()
	var out []protocol.Patch
	for {
		f := h.read()
		require.Equal(h.t, protocol.FramePatches, f.Type)
		pf, err := protocol.DecodePatches(f.Payload)
		require.NoError(h.t, err)
		out = append(out, pf.Patches...)
		if f.Flags.Has(protocol.FlagFinal) {
			return out
		}
	}
}

func (h *harness) errorMessage() *protocol.ErrorMessage {
	h.t.Helper()
	f := h.read()
	require.Equal(h.t, protocol.FrameError, f.Type)
	em, err := protocol.DecodeErrorMessage(f.Payload)
	require.NoError(h.t, err)
	return em
}

func (h *harness) getItems() []string {
	h.t.Helper()
	resp, err := http.Get(h.ts.URL + "/api/items")
	require.NoError(h.t, err)
	defer resp.Body.Close()
	var body itemsResponse
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Items
}

func TestSession_InitialRender(t *testing.T) {
	h := newHarness(t, []string{"a", "b", "c"})

	got := h.patches()
	require.NotEmpty(t, got)
	assert.Equal(t, protocol.NewReorderPatch(ContainerHID, []string{"i0", "i1", "i2"}), got[0])
	assert.Contains(t, got, protocol.NewSetAttrPatch("i1", ItemAttribute, "b"))
	for _, hid := range []string{"i0", "i1", "i2"} {
		assert.Contains(t, got, protocol.NewSetAttrPatch(hid, sortable.DraggableAttribute, "true"))
	}
	assert.Len(t, got, 7)

	require.Eventually(t, func() bool { return h.srv.SessionCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.activeSessions))
}

func TestSession_DragReorders(t *testing.T) {
	h := newHarness(t, []string{"a", "b", "c", "d"})
	h.patches()
	h.layout(4)

	h.event(protocol.EventDragStart, "i0", 50, 10)
	assert.Equal(t, []protocol.Patch{protocol.NewAddClassPatch("i0", "dragging")}, h.patches())

	h.event(protocol.EventDragEnter, "i2", 50, 50)
	assert.Equal(t, []protocol.Patch{protocol.NewAddClassPatch("i2", "dragover")}, h.patches())

	// Second half of i2 on both axes: insert after.
	h.event(protocol.EventDrop, "i2", 75, 55)
	assert.Equal(t, []protocol.Patch{protocol.NewRemoveClassPatch("i2", "dragover")}, h.patches())

	h.event(protocol.EventDragEnd, "i0", 75, 55)
	assert.Equal(t, []protocol.Patch{
		protocol.NewRemoveClassPatch("i0", "dragging"),
		protocol.NewReorderPatch(ContainerHID, []string{"i1", "i2", "i0", "i3"}),
	}, h.patches())

	assert.Equal(t, []string{"b", "c", "a", "d"}, h.getItems())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.reordersTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.gesturesStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.eventsTotal.WithLabelValues("DragEnd")))

	// A new session starts from the committed order.
	second := h.dial()
	h.conn = second
	got := h.patches()
	assert.Equal(t, protocol.NewSetAttrPatch("i0", ItemAttribute, "b"), got[1])
}

func TestSession_AbortedGesture(t *testing.T) {
	h := newHarness(t, []string{"a", "b"})
	h.patches()

	h.event(protocol.EventDragStart, "i1", 0, 0)
	h.patches()
	h.event(protocol.EventDragEnd, "i1", 0, 0)
	assert.Equal(t, []protocol.Patch{protocol.NewRemoveClassPatch("i1", "dragging")}, h.patches())

	assert.Equal(t, []string{"a", "b"}, h.getItems())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.gesturesAborted.WithLabelValues("no_target")))
}

func TestSession_Preview(t *testing.T) {
	h := newHarness(t, []string{"a", "b", "c", "d"},
		sortable.WithAnimate(true),
		sortable.WithInsertPolicy(sortable.InsertWhileOver),
	)
	h.patches()
	h.layout(4)

	h.event(protocol.EventDragStart, "i0", 50, 10)
	h.patches()

	h.event(protocol.EventDragOver, "i3", 75, 75)
	got := h.patches()
	assert.Contains(t, got, protocol.NewSetStylePatch("i0", sortable.StyleTransform, "translate(0px, 60px)"))
	assert.Contains(t, got, protocol.NewSetStylePatch("i1", sortable.StyleTransform, "translate(0px, -20px)"))
	assert.Contains(t, got, protocol.NewSetStylePatch("i3", sortable.StyleTransition,
		"transform 200ms cubic-bezier(0.25, 0.1, 0.25, 1) 0ms"))

	h.event(protocol.EventDragEnd, "i0", 75, 75)
	got = h.patches()
	assert.Contains(t, got, protocol.NewRemoveStylePatch("i0", sortable.StyleTransform))
	assert.Contains(t, got, protocol.NewReorderPatch(ContainerHID, []string{"i1", "i2", "i3", "i0"}))
	assert.Equal(t, []string{"b", "c", "d", "a"}, h.getItems())
}

func TestSession_BadInput(t *testing.T) {
	h := newHarness(t, []string{"a"})
	h.patches()

	require.NoError(t, h.conn.WriteMessage(websocket.BinaryMessage, []byte{0x09, 0, 0, 0}))
	assert.Equal(t, protocol.ErrInvalidFrame, h.errorMessage().Code)

	h.send(protocol.FrameEvent, []byte{0x01})
	assert.Equal(t, protocol.ErrInvalidEvent, h.errorMessage().Code)

	h.event(protocol.EventDragStart, "i9", 0, 0)
	em := h.errorMessage()
	assert.Equal(t, protocol.ErrUnknownHID, em.Code)
	assert.Equal(t, "i9", em.Message)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.decodeErrors.WithLabelValues("frame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.srv.metrics.decodeErrors.WithLabelValues("event")))
}

func TestSession_PingPongAndClose(t *testing.T) {
	h := newHarness(t, []string{"a"})
	h.patches()

	ct, pp := protocol.NewPing(1234)
	h.send(protocol.FrameControl, protocol.EncodeControl(ct, pp))
	f := h.read()
	require.Equal(t, protocol.FrameControl, f.Type)
	gotType, payload, err := protocol.DecodeControl(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, protocol.ControlPong, gotType)
	assert.Equal(t, uint64(1234), payload.(*protocol.PingPong).Timestamp)

	ct2, cm := protocol.NewClose(protocol.CloseGoingAway, "bye")
	h.send(protocol.FrameControl, protocol.EncodeControl(ct2, cm))
	require.Eventually(t, func() bool { return h.srv.SessionCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(h.srv.metrics.activeSessions))
}

func TestServer_Routes(t *testing.T) {
	h := newHarness(t, nil)

	resp, err := http.Get(h.ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{}, h.getItems())

	resp, err = http.Get(h.ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "sortable_active_sessions")
}

func TestSameOriginCheck(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://example.com/ws", nil)
	assert.True(t, SameOriginCheck(r))

	r.Header.Set("Origin", "http://example.com")
	assert.True(t, SameOriginCheck(r))

	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, SameOriginCheck(r))
}

func TestServer_ServeShutdown(t *testing.T) {
	srv := New(&Config{Items: []string{"a"}, HeartbeatInterval: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	h := &harness{t: t, srv: srv, conn: conn}
	h.patches()

	cancel()

	f := h.read()
	require.Equal(t, protocol.FrameControl, f.Type)
	ct, payload, err := protocol.DecodeControl(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, protocol.ControlClose, ct)
	assert.Equal(t, protocol.CloseServerShutdown, payload.(*protocol.CloseMessage).Reason)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, 0, srv.SessionCount())
}

func TestSession_Heartbeat(t *testing.T) {
	h := newHarnessConfig(t, &Config{Items: []string{"a"}, HeartbeatInterval: 20 * time.Millisecond})

	// The first ping may race the initial patches.
	f := h.read()
	for f.Type == protocol.FramePatches {
		f = h.read()
	}
	require.Equal(t, protocol.FrameControl, f.Type)
	ct, payload, err := protocol.DecodeControl(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, protocol.ControlPing, ct)
	assert.NotZero(t, payload.(*protocol.PingPong).Timestamp)
}
