package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// SessionHandler issues and clears the identity cookie.
type SessionHandler struct {
	jwtService auth.JWTService
	secure     bool
	logger     *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. secure selects the
// production cookie attributes (Secure, SameSite=None).
func NewSessionHandler(jwtService auth.JWTService, secure bool, logger *slog.Logger) *SessionHandler {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		jwtService: jwtService,
		secure:     secure,
		logger:     logger.With(slog.String("component", "session_handler")),
	}
}

// IssueSession handles POST /jwt.
// It signs a token for the supplied email and stores it in the session cookie.
func (h *SessionHandler) IssueSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailRequired)
		return
	}
	if err := domain.CheckIdentity(req.Email); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), req.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}

	cookie := h.sessionCookie(token)
	cookie.Expires = expiresAt
	http.SetCookie(w, cookie)

	log.Debug("session issued", slog.Time("expires_at", expiresAt))
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// EndSession handles GET /logout by expiring the session cookie.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

func (h *SessionHandler) sessionCookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if h.secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
