package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Session is one WebSocket connection bound to an authenticated identity.
type Session struct {
	id       string
	identity string
	conn     *websocket.Conn
	hub      *Hub
	logger   *slog.Logger

	// room is guarded by hub.mu.
	room string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newSession(hub *Hub, conn *websocket.Conn, identity string, sendBuffer int, logger *slog.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		id:       id,
		identity: identity,
		conn:     conn,
		hub:      hub,
		send:     make(chan []byte, sendBuffer),
		logger:   logger.With(slog.String("session_id", id)),
	}
}

// enqueue offers frame to the writer without blocking.
func (s *Session) enqueue(frame []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (s *Session) closeSend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

func (s *Session) sendControl(frame ControlFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("failed to encode control frame", slog.String("error", err.Error()))
		return
	}
	if !s.enqueue(data) {
		s.logger.Debug("dropping control frame", slog.String("type", frame.Type))
	}
}

// readPump reads client messages until the connection fails, then
// unregisters the session.
func (s *Session) readPump() {
	defer func() {
		s.hub.Unregister(s)
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", slog.String("error", err.Error()))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendControl(ControlFrame{Type: FrameError, Message: "Invalid message format"})
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *Session) handleMessage(msg ClientMessage) {
	switch msg.Type {
	case MessageJoinRoom:
		if msg.Room == "" {
			s.sendControl(ControlFrame{Type: FrameError, Message: "Room is required"})
			return
		}
		if msg.Room != s.identity {
			s.logger.Debug("rejected join for foreign room")
			s.sendControl(ControlFrame{Type: FrameError, Message: "Forbidden room"})
			return
		}
		if err := s.hub.Join(s, msg.Room); err != nil {
			s.logger.Debug("join failed", slog.String("error", err.Error()))
			return
		}
		s.sendControl(ControlFrame{Type: FrameJoined, Room: msg.Room})
	case MessageLeaveRoom:
		s.hub.Leave(s)
		s.sendControl(ControlFrame{Type: FrameLeft})
	default:
		s.sendControl(ControlFrame{Type: FrameError, Message: "Unknown message type: " + msg.Type})
	}
}

// writePump drains the send queue to the connection and pings the peer.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Debug("websocket write failed", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
