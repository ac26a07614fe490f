package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/protocol"
)

// ReadLoop reads frames until the connection closes. Events are applied
// one at a time and the patches they produce are flushed after each frame.
func (s *Session) ReadLoop() {
	defer s.Close()

	// The initial render.
	s.flush()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.server.metrics.decodeError("frame")
			s.logger.Warn("frame decode error", "error", errors.FromError(err, "E301").WithDetail(err.Error()))
			s.sendErrorMessage(protocol.ErrInvalidFrame, err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		case protocol.FrameControl:
			s.handleControlFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}

		s.flush()
		if s.IsClosed() {
			return
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.server.metrics.decodeError("event")
		s.logger.Warn("event decode error", "error", errors.FromError(err, "E302").WithDetail(err.Error()))
		s.sendErrorMessage(protocol.ErrInvalidEvent, err.Error())
		return
	}
	s.logger.Debug("event", "seq", pe.Seq, "type", pe.Type, "hid", pe.HID)
	s.handleEvent(pe)
}

func (s *Session) handleControlFrame(payload []byte) {
	ct, data, err := protocol.DecodeControl(payload)
	if err != nil {
		s.server.metrics.decodeError("control")
		s.logger.Warn("control decode error", "error", err)
		return
	}

	switch ct {
	case protocol.ControlPing:
		if pp, ok := data.(*protocol.PingPong); ok {
			pct, pong := protocol.NewPong(pp.Timestamp)
			if err := s.sendControl(pct, pong); err != nil {
				s.logger.Debug("pong not sent", "error", err)
			}
		}

	case protocol.ControlPong:
		s.logger.Debug("received pong")

	case protocol.ControlClose:
		if cm, ok := data.(*protocol.CloseMessage); ok {
			s.logger.Info("client closing", "reason", cm.Reason, "message", cm.Message)
		}
		s.Close()
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
