package store

import (
	"context"

	"github.com/phrazzld/taskmate-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// CreateIfNotExists inserts user unless a user with the same email already
	// exists. The check and the insert are a single atomic operation.
	// created is false, with a nil error, when the email was already taken.
	CreateIfNotExists(ctx context.Context, user *domain.User) (created bool, err error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
