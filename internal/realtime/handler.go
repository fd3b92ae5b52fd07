package realtime

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// DefaultSendBuffer is the per-session outbound queue used when the
// configured size is not positive.
const DefaultSendBuffer = 16

// Handler upgrades authenticated requests to realtime sessions.
type Handler struct {
	hub        *Hub
	jwtService auth.JWTService
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *slog.Logger
}

// NewHandler creates a WebSocket handler. Browser origins must appear in
// allowedOrigins; requests without an Origin header are accepted.
// Panics if any dependency is nil.
func NewHandler(
	hub *Hub,
	jwtService auth.JWTService,
	allowedOrigins []string,
	sendBuffer int,
	logger *slog.Logger,
) *Handler {
	if hub == nil {
		panic("hub cannot be nil for realtime Handler")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil for realtime Handler")
	}
	if logger == nil {
		panic("logger cannot be nil for realtime Handler")
	}
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}

	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		sendBuffer: sendBuffer,
		logger:     logger.With(slog.String("component", "realtime_handler")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := origins[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// ServeHTTP authenticates the session cookie, upgrades the connection and
// runs the session until the peer goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized access")
		return
	}
	claims, err := h.jwtService.ValidateToken(r.Context(), cookie.Value)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	s := newSession(h.hub, conn, claims.Email, h.sendBuffer, h.logger)
	if !h.hub.Register(s) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go s.writePump()
	s.readPump()
}
