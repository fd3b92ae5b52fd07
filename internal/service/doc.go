// Package service contains the task and user use cases.
//
// TaskService enforces ownership on every operation: the owner identity comes
// from the authenticated session, never from request data, and every store
// call is filtered by it. Each successful mutation sends exactly one change
// signal for the acting identity through events.Notifier.
//
// UserService registers users keyed by email, inserting only when the email
// is not already taken.
//
// Errors:
//   - expected conditions are sentinel errors (ErrForbidden, ErrTaskNotFound,
//     ErrInvalidIdentifier) or domain validation errors, matched with errors.Is;
//   - unexpected failures are wrapped in *TaskServiceError or *UserServiceError
//     and map to 500 in the API layer.
package service
