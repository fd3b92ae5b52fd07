package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
)

// SessionRequest defines the payload for the session endpoint.
type SessionRequest struct {
	Email string `json:"email" validate:"required"`
}

// SuccessResponse acknowledges a session change.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// RegisterUserResponse is returned by the registration endpoint.
// InsertedID is null when the user already existed.
type RegisterUserResponse struct {
	Acknowledged bool       `json:"acknowledged,omitempty"`
	Message      string     `json:"message,omitempty"`
	InsertedID   *uuid.UUID `json:"insertedId"`
}

// CreateTaskRequest defines the payload for creating a task.
// Field constraints are enforced by the task service.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTaskRequest defines the payload for PUT and PATCH. Absent fields
// are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// UpdateTaskResponse is returned by PUT /tasks/{id}.
type UpdateTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}

// PatchTaskResponse is returned by PATCH /tasks/{id} and reports the
// fields that were actually written.
type PatchTaskResponse struct {
	Message       string            `json:"message"`
	TaskID        string            `json:"taskId"`
	UpdatedFields domain.TaskUpdate `json:"updatedFields"`
}

// MessageResponse carries a single status message.
type MessageResponse struct {
	Message string `json:"message"`
}
