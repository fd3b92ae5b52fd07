package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrForbidden indicates the caller asked for data owned by another identity.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("access to another user's resources is forbidden")

	// ErrInvalidIdentifier indicates a task id that cannot be parsed.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidIdentifier = errors.New("invalid task identifier")

	// ErrTaskNotFound indicates no task matched the id for the caller.
	// A task owned by someone else is reported the same way.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = fmt.Errorf("%w: task", store.ErrNotFound)
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "delete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping. A row the
// database refused is reported as a validation error.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	case errors.Is(err, ErrInvalidIdentifier):
		return ErrInvalidIdentifier
	case errors.Is(err, domain.ErrValidation):
		return err
	case errors.Is(err, store.ErrInvalidEntity):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UserServiceError wraps errors from the user service with context.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
// Validation errors are returned unwrapped, and rows the database refused
// are reported as validation errors.
func NewUserServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	if errors.Is(err, store.ErrInvalidEntity) {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
