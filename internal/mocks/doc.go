// Package mocks provides centralized mock implementations for testing.
//
// Two kinds of doubles live here:
//
//   - testify/mock types (TaskStore, UserStore) for tests that assert exact
//     calls and arguments;
//   - in-memory fakes (MemoryTaskStore, MemoryUserStore) and recorders
//     (RecordingNotifier, MockJWTService) for tests that exercise behaviour
//     across several calls.
//
// Usage:
//
//	taskStore := new(mocks.TaskStore)
//	taskStore.On("ListByOwner", mock.Anything, "a@example.com").Return([]*domain.Task{}, nil)
//
//	notifier := mocks.NewRecordingNotifier()
//	svc := service.NewTaskService(taskStore, notifier, logger)
package mocks
