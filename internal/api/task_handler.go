package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskmate-api/internal/api/shared"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// TaskHandler handles task-related HTTP requests. Every route it serves sits
// behind the auth middleware.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks/{email} requests.
// The path email must be the caller's own identity.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	// chi matches on RawPath when the client's escaping is not canonical,
	// and only then is the parameter still escaped.
	requested := chi.URLParam(r, "email")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(requested)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, msgForbidden, err)
			return
		}
		requested = unescaped
	}

	tasks, err := h.taskService.ListTasks(r.Context(), identity, requested)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), identity, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ReplaceTask handles PUT /tasks/{id} requests. Both update routes echo the
// id as the client sent it.
func (h *TaskHandler) ReplaceTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.update(w, r); !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateTaskResponse{
		Message: "Task updated",
		TaskID:  chi.URLParam(r, "id"),
	})
}

// PatchTask handles PATCH /tasks/{id} requests. The response also lists the
// fields that were written.
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	result, ok := h.update(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PatchTaskResponse{
		Message:       "Task updated",
		TaskID:        chi.URLParam(r, "id"),
		UpdatedFields: result.UpdatedFields,
	})
}

// DeleteTask handles DELETE /tasks/{id} requests. The response is the same
// whether or not a task was removed.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted"})
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) (*service.UpdateTaskResult, bool) {
	identity, ok := h.identity(w, r)
	if !ok {
		return nil, false
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return nil, false
	}

	rawID := chi.URLParam(r, "id")
	result, err := h.taskService.UpdateTask(r.Context(), identity, rawID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		h.respondWithServiceError(w, r, err, shared.WithDetails("No task found with ID: "+rawID))
		return nil, false
	}
	return result, true
}

// identity returns the authenticated identity or writes a 401.
func (h *TaskHandler) identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := shared.GetIdentity(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("identity missing from request context")
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgUnauthorized, auth.ErrMissingToken)
		return "", false
	}
	return identity, true
}

// respondWithServiceError maps err to a status and safe message. notFoundOpts
// are applied only to 404 responses.
func (h *TaskHandler) respondWithServiceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	notFoundOpts ...shared.ResponseOption,
) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusNotFound {
		opts = notFoundOpts
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
