package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every method that touches a single task filters by both id and owner, so a
// task owned by someone else behaves exactly like a missing one.
type TaskStore interface {
	// ListByOwner returns every task owned by owner in store-native order.
	// Returns an empty, non-nil slice when the owner has no tasks.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)

	// Create saves a new task.
	// Returns ErrInvalidEntity if the database rejects the row.
	Create(ctx context.Context, task *domain.Task) error

	// Update writes the non-nil fields of update to the task matching
	// (id, owner). An empty update still checks that the task matches.
	// Returns ErrTaskNotFound when no task matches the filter.
	Update(ctx context.Context, id uuid.UUID, owner string, update domain.TaskUpdate) error

	// Delete removes the task matching (id, owner).
	// A missing match is not an error; deleted reports whether a row went away.
	Delete(ctx context.Context, id uuid.UUID, owner string) (deleted bool, err error)
}
