package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// MemoryTaskStore is an in-memory store.TaskStore keeping insertion order.
type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks []*domain.Task

	// Err, when set, is returned by every method.
	Err error
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{}
}

// ListByOwner implements store.TaskStore.
func (m *MemoryTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]*domain.Task, 0)
	for _, t := range m.tasks {
		if t.OwnerEmail == owner {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Create implements store.TaskStore.
func (m *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	cp := *task
	m.tasks = append(m.tasks, &cp)
	return nil
}

// Update implements store.TaskStore.
func (m *MemoryTaskStore) Update(ctx context.Context, id uuid.UUID, owner string, update domain.TaskUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	for _, t := range m.tasks {
		if t.ID == id && t.OwnerEmail == owner {
			update.ApplyTo(t)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// Delete implements store.TaskStore.
func (m *MemoryTaskStore) Delete(ctx context.Context, id uuid.UUID, owner string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}

	for i, t := range m.tasks {
		if t.ID == id && t.OwnerEmail == owner {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Get returns a copy of the task with id regardless of owner.
func (m *MemoryTaskStore) Get(id uuid.UUID) (*domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tasks {
		if t.ID == id {
			cp := *t
			return &cp, true
		}
	}
	return nil, false
}

// MemoryUserStore is an in-memory store.UserStore keyed by email.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// Err, when set, is returned by every method.
	Err error
}

var _ store.UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*domain.User)}
}

// CreateIfNotExists implements store.UserStore.
func (m *MemoryUserStore) CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}

	if _, exists := m.users[user.Email]; exists {
		return false, nil
	}
	cp := *user
	m.users[user.Email] = &cp
	return true, nil
}

// GetByEmail implements store.UserStore.
func (m *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	user, ok := m.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Count returns the number of stored users.
func (m *MemoryUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}
