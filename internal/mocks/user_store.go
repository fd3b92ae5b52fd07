package mocks

import (
	"context"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a mock of store.UserStore for use with testify/mock.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

// CreateIfNotExists is a mock implementation of store.UserStore.CreateIfNotExists
func (m *UserStore) CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
