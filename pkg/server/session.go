package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/protocol"
	"github.com/vango-dev/sortable/pkg/sortable"
)

// ContainerHID is the HID of the list container on every session.
const ContainerHID = "list"

// maxPatchesPerFrame keeps patch frames well below the frame size limit.
const maxPatchesPerFrame = 256

// Session is one client connection and the list it edits.
//
// The controller and elements are owned by the goroutine running ReadLoop.
// Frame writes are serialized by mu.
type Session struct {
	id     string
	conn   *websocket.Conn
	server *Server
	config *Config
	logger *slog.Logger
	ctx    context.Context

	controller *sortable.Controller[string]
	container  *dom.Node
	elements   []*element
	byHID      map[string]*element
	deferred   []func()
	pending    []protocol.Patch

	mu      sync.Mutex
	sendSeq atomic.Uint64
	done    chan struct{}
	closed  atomic.Bool
}

func generateSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// newSession builds the controller and elements for the server's current
// items and runs the first render pass. The initial patches stay queued
// until the first flush.
func newSession(ctx context.Context, srv *Server, conn *websocket.Conn) *Session {
	id := generateSessionID()
	s := &Session{
		id:        id,
		conn:      conn,
		server:    srv,
		config:    srv.config,
		logger:    srv.logger.With("session_id", id),
		ctx:       ctx,
		container: dom.NewNode("ul").WithHID(ContainerHID),
		byHID:     make(map[string]*element),
		done:      make(chan struct{}),
	}

	items := srv.Items()
	opts := append(slices.Clone(srv.config.Options),
		sortable.WithScheduler(s.schedule),
		sortable.WithObserver(sessionObserver{s}),
		sortable.WithLogger(s.logger),
	)
	s.controller = sortable.New(items, opts...)
	s.controller.OnChange(s.committed)

	s.elements = make([]*element, len(items))
	for i := range items {
		el := newElement("i"+strconv.Itoa(i), s)
		s.elements[i] = el
		s.byHID[el.hid] = el
	}
	s.queuePatch(protocol.NewReorderPatch(ContainerHID, s.hids()))
	for i, item := range items {
		s.elements[i].SetAttribute(ItemAttribute, item)
	}

	s.controller.Mount(s.container)
	if err := s.render(); err != nil {
		s.logger.Error("initial render failed", "error", err)
	}
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Items returns the session's current order.
func (s *Session) Items() []string {
	return s.controller.Items()
}

func (s *Session) queuePatch(p protocol.Patch) {
	s.pending = append(s.pending, p)
}

// schedule defers fn until the current frame has been dispatched.
func (s *Session) schedule(fn func()) {
	s.deferred = append(s.deferred, fn)
}

func (s *Session) runDeferred() {
	for len(s.deferred) > 0 {
		fns := s.deferred
		s.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}
}

func (s *Session) hids() []string {
	out := make([]string, len(s.elements))
	for i, el := range s.elements {
		out[i] = el.hid
	}
	return out
}

func (s *Session) render() error {
	pass := s.controller.BeginRender()
	for _, el := range s.elements {
		pass.Register(el)
	}
	return pass.End()
}

// committed follows a reorder: the elements are re-rendered in the new
// order and the order is published to the server.
func (s *Session) committed(items []string) {
	for i := range s.elements {
		if el, ok := s.controller.Element(i).(*element); ok {
			s.elements[i] = el
		}
	}
	s.queuePatch(protocol.NewReorderPatch(ContainerHID, s.hids()))
	if err := s.render(); err != nil {
		s.logger.Error("render after reorder failed", "error", err)
	}
	s.server.publish(items)
}

// handleEvent applies one decoded client event.
func (s *Session) handleEvent(pe *protocol.Event) {
	s.server.metrics.event(pe.Type)

	if pe.Type == protocol.EventLayout {
		data, _ := pe.Payload.(*protocol.LayoutEventData)
		s.applyLayout(data)
		return
	}

	t, ok := pe.Type.DOM()
	if !ok {
		s.sendErrorMessage(protocol.ErrInvalidEvent, "unsupported event "+pe.Type.String())
		return
	}

	var target dom.Element = s.container
	if pe.HID != "" && pe.HID != ContainerHID {
		el, ok := s.byHID[pe.HID]
		if !ok {
			s.sendErrorMessage(protocol.ErrUnknownHID, pe.HID)
			return
		}
		target = el
	}

	d := pe.Drag()
	s.container.Dispatch(dom.Event{
		Type:    t,
		Target:  target,
		ClientX: float64(d.ClientX),
		ClientY: float64(d.ClientY),
	})
	s.runDeferred()
}

// applyLayout stores reported element boxes. Outside a drag a render pass
// runs so the controller captures them.
func (s *Session) applyLayout(data *protocol.LayoutEventData) {
	if data == nil {
		return
	}
	for _, r := range data.Rects {
		if el, ok := s.byHID[r.HID]; ok {
			el.rect = r.Rect
		} else if r.HID == ContainerHID {
			s.container.SetRect(r.Rect)
		}
	}
	if s.controller.Session().Dragging {
		return
	}
	if err := s.render(); err != nil {
		s.logger.Error("render after layout failed", "error", err)
	}
}

// flush sends the queued patches.
func (s *Session) flush() {
	if len(s.pending) == 0 {
		return
	}
	patches := s.pending
	s.pending = nil
	if err := s.SendPatches(patches); err != nil {
		s.logger.Debug("flush failed", "error", err)
	}
}

// SendPatches sends patches in one or more frames. The last frame carries
// FlagFinal.
func (s *Session) SendPatches(patches []protocol.Patch) error {
	for start := 0; start < len(patches); start += maxPatchesPerFrame {
		end := min(start+maxPatchesPerFrame, len(patches))
		pf := &protocol.PatchesFrame{
			Seq:     s.sendSeq.Add(1),
			Patches: patches[start:end],
		}
		frame := protocol.NewFrame(protocol.FramePatches, protocol.EncodePatches(pf))
		if end == len(patches) {
			frame.Flags |= protocol.FlagFinal
		}
		if err := s.writeFrame(frame); err != nil {
			return err
		}
		s.server.metrics.patchesSent.Add(float64(end - start))
		s.logger.Debug("sent patches", "seq", pf.Seq, "count", end-start)
	}
	return nil
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		return err
	}
	return nil
}

// sendErrorMessage sends a non-fatal error frame.
func (s *Session) sendErrorMessage(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(protocol.NewError(code, message))
	if err := s.writeFrame(protocol.NewFrame(protocol.FrameError, payload)); err != nil {
		s.logger.Debug("error frame not sent", "code", code, "error", err)
	}
}

func (s *Session) sendControl(ct protocol.ControlType, payload any) error {
	return s.writeFrame(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(ct, payload)))
}

func (s *Session) sendPing() error {
	ct, pp := protocol.NewPing(uint64(time.Now().UnixMilli()))
	return s.sendControl(ct, pp)
}

// SendClose sends a Close control message and closes the session.
func (s *Session) SendClose(reason protocol.CloseReason, message string) {
	ct, cm := protocol.NewClose(reason, message)
	if err := s.sendControl(ct, cm); err != nil {
		s.logger.Debug("close message not sent", "error", err)
	}
	s.Close()
}

// Close closes the connection. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.mu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.mu.Unlock()

	s.server.removeSession(s)
	s.logger.Info("session closed")
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// sessionObserver feeds controller notifications into metrics and tracing.
type sessionObserver struct {
	s *Session
}

func (o sessionObserver) DragStarted(source int) {
	o.s.server.metrics.gesturesStarted.Inc()
}

func (o sessionObserver) Committed(source, target int, insertBefore bool, length int) {
	o.s.server.metrics.reordersTotal.Inc()
	traceReorder(o.s.ctx, o.s.server.tracer, o.s.id, source, target, insertBefore, length)
	o.s.logger.Info("reorder committed",
		"source", source,
		"target", target,
		"insert_before", insertBefore)
}

func (o sessionObserver) Aborted(reason string) {
	o.s.server.metrics.gesturesAborted.WithLabelValues(reason).Inc()
}
