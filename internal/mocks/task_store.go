package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a mock of store.TaskStore for use with testify/mock.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// ListByOwner is a mock implementation of store.TaskStore.ListByOwner
func (m *TaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	args := m.Called(ctx, owner)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.TaskStore.Create
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TaskStore) Update(ctx context.Context, id uuid.UUID, owner string, update domain.TaskUpdate) error {
	args := m.Called(ctx, id, owner, update)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID, owner string) (bool, error) {
	args := m.Called(ctx, id, owner)
	return args.Bool(0), args.Error(1)
}
