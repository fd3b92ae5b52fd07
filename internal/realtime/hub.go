package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/metrics"
)

// Hub tracks connected sessions and their room membership.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
	rooms    map[string]map[*Session]struct{}
	closed   bool
	logger   *slog.Logger
}

// Ensure Hub implements events.Sink interface
var _ events.Sink = (*Hub)(nil)

// NewHub creates an empty hub.
// Panics if logger is nil.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		panic("logger cannot be nil for Hub")
	}
	return &Hub{
		sessions: make(map[*Session]struct{}),
		rooms:    make(map[string]map[*Session]struct{}),
		logger:   logger.With(slog.String("component", "realtime_hub")),
	}
}

// Register adds a session to the hub. It returns false when the hub is closed.
func (h *Hub) Register(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.sessions[s] = struct{}{}
	metrics.RealtimeSessions.Inc()
	h.logger.Debug("session registered", slog.String("session_id", s.id))
	return true
}

// Unregister removes a session from the hub and its room and closes its
// outbound queue. Unregistering an unknown session is a no-op.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s]; !ok {
		return
	}
	h.removeLocked(s)
	h.logger.Debug("session unregistered", slog.String("session_id", s.id))
}

func (h *Hub) removeLocked(s *Session) {
	h.leaveLocked(s)
	delete(h.sessions, s)
	s.closeSend()
	metrics.RealtimeSessions.Dec()
}

// Join moves s into room, leaving any room it was in before.
func (h *Hub) Join(s *Session, room string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s]; !ok {
		return fmt.Errorf("session %s is not registered", s.id)
	}

	h.leaveLocked(s)
	members := h.rooms[room]
	if members == nil {
		members = make(map[*Session]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
	s.room = room
	return nil
}

// Leave removes s from its current room.
func (h *Hub) Leave(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(s)
}

func (h *Hub) leaveLocked(s *Session) {
	if s.room == "" {
		return
	}
	if members := h.rooms[s.room]; members != nil {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, s.room)
		}
	}
	s.room = ""
}

// Broadcast queues frame for every session in room and returns how many
// sessions accepted it. Sessions with a full queue miss the frame.
func (h *Hub) Broadcast(room string, frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.rooms[room] {
		if s.enqueue(frame) {
			delivered++
			continue
		}
		metrics.RealtimeFramesDropped.Inc()
		h.logger.Debug("session send buffer full, dropping frame",
			slog.String("session_id", s.id))
	}
	return delivered
}

// Deliver implements events.Sink by broadcasting the change frame to the
// room named after the event's identity.
func (h *Hub) Deliver(ctx context.Context, event events.ChangeEvent) error {
	frame, err := json.Marshal(ChangeFrame{Event: event.Name()})
	if err != nil {
		return fmt.Errorf("failed to encode change frame: %w", err)
	}
	delivered := h.Broadcast(event.Identity, frame)
	h.logger.Debug("change frame broadcast", slog.Int("sessions", delivered))
	return nil
}

// Close unregisters every session. Registration fails after Close.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for s := range h.sessions {
		h.removeLocked(s)
	}
	h.logger.Info("realtime hub closed")
}

// SessionCount returns the number of registered sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// RoomSize returns the number of sessions in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
