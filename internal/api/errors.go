package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// Client-facing error messages.
const (
	msgUnauthorized       = "Unauthorized access"
	msgForbidden          = "You can only access your own tasks"
	msgInvalidTitle       = "Invalid title"
	msgDescriptionTooLong = "Description too long"
	msgEmailRequired      = "Email is required"
	msgInvalidEmail       = "Invalid email"
	msgInvalidTaskID      = "Invalid task ID format"
	msgTaskNotFound       = "Task not found"
	msgInvalidRequest     = "Invalid request format"
	msgInternal           = "Internal server error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case auth.IsUnauthenticated(err):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrInvalidIdentifier):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	switch {
	case auth.IsUnauthenticated(err):
		return msgUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return msgForbidden

	case errors.Is(err, service.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, service.ErrInvalidIdentifier):
		return msgInvalidTaskID

	// Validation errors, most specific first
	case errors.Is(err, domain.ErrInvalidTitle):
		return msgInvalidTitle
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return msgDescriptionTooLong
	case errors.Is(err, domain.ErrEmailRequired):
		return msgEmailRequired
	case errors.Is(err, domain.ErrInvalidEmail):
		return msgInvalidEmail
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return msgInternal
	}
}
