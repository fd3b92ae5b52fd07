package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/metrics"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// CreateTaskInput holds the client-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
}

// UpdateTaskInput holds the fields a client asked to change. Nil means
// "not provided".
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *string
}

// UpdateTaskResult describes an applied update.
type UpdateTaskResult struct {
	TaskID        uuid.UUID
	UpdatedFields domain.TaskUpdate
}

// TaskService provides the owner-scoped task operations.
type TaskService interface {
	// ListTasks returns every task owned by identity. requested is the identity
	// named by the client and must equal identity, else ErrForbidden.
	ListTasks(ctx context.Context, identity, requested string) ([]*domain.Task, error)

	// CreateTask validates input and stores a new task owned by identity.
	CreateTask(ctx context.Context, identity string, input CreateTaskInput) (*domain.Task, error)

	// UpdateTask writes the acceptable fields of input to the task rawID owned
	// by identity. Unacceptable fields are dropped. Returns ErrTaskNotFound
	// when no task matches, including when another identity owns it.
	UpdateTask(ctx context.Context, identity, rawID string, input UpdateTaskInput) (*UpdateTaskResult, error)

	// DeleteTask removes the task rawID if identity owns it. A missing or
	// foreign task is not an error.
	DeleteTask(ctx context.Context, identity, rawID string) error
}

// taskIDLength is the length of the canonical hyphenated UUID form.
const taskIDLength = 36

// ParseTaskID parses a client-supplied task identifier. Only the canonical
// hyphenated form is accepted; uuid.Parse alone also takes urn, braced and
// unhyphenated spellings.
func ParseTaskID(raw string) (uuid.UUID, error) {
	if len(raw) != taskIDLength {
		return uuid.Nil, ErrInvalidIdentifier
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidIdentifier
	}
	return id, nil
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks    store.TaskStore
	notifier events.Notifier
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, notifier events.Notifier, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if notifier == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "notifier cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "task_service")),
		timeFunc: time.Now,
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, identity, requested string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if identity == "" || requested != identity {
		log.Debug("list rejected: requested identity differs from caller")
		return nil, ErrForbidden
	}

	tasks, err := s.tasks.ListByOwner(ctx, identity)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	identity string,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(identity, input.Title, input.Description, input.Category, s.timeFunc())
	if err != nil {
		log.Debug("task rejected", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "invalid task", err)
	}

	err = s.tasks.Create(ctx, task)
	metrics.RecordTaskMutation("create", err)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.notifier.NotifyChanged(ctx, identity)
	log.Info("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	identity, rawID string,
	input UpdateTaskInput,
) (*UpdateTaskResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := ParseTaskID(rawID)
	if err != nil {
		return nil, err
	}

	update := domain.SanitizeUpdate(input.Title, input.Description, input.Category)

	err = s.tasks.Update(ctx, id, identity, update)
	metrics.RecordTaskMutation("update", err)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no task matched update", slog.String("task_id", id.String()))
		} else {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.String("task_id", id.String()))
		}
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	s.notifier.NotifyChanged(ctx, identity)
	log.Info("task updated", slog.String("task_id", id.String()))
	return &UpdateTaskResult{TaskID: id, UpdatedFields: update}, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, identity, rawID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := ParseTaskID(rawID)
	if err != nil {
		return err
	}

	deleted, err := s.tasks.Delete(ctx, id, identity)
	metrics.RecordTaskMutation("delete", err)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	// The signal goes out whether or not a row matched.
	s.notifier.NotifyChanged(ctx, identity)
	log.Info("task delete processed",
		slog.String("task_id", id.String()),
		slog.Bool("deleted", deleted))
	return nil
}
