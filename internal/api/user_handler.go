package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service"
)

// maxProfileBytes caps the registration payload.
const maxProfileBytes = 64 << 10

// UserHandler handles user registration.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// RegisterUser handles POST /users.
// The whole JSON object is kept as the user's profile; only email is read.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProfileBytes))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	var profile struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	result, err := h.userService.RegisterUser(r.Context(), profile.Email, body)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if !result.Created {
		log.Debug("registration skipped, user exists")
		shared.RespondWithJSON(w, r, http.StatusOK, RegisterUserResponse{Message: "User already exists"})
		return
	}

	id := result.UserID
	shared.RespondWithJSON(w, r, http.StatusOK, RegisterUserResponse{Acknowledged: true, InsertedID: &id})
}
