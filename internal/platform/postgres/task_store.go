package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/store"
)

const taskColumns = "id, owner_email, title, description, category, created_at"

// PostgresTaskStore implements store.TaskStore using PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore.
// db may be a *sql.DB or a *sql.Tx.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// WithTx returns a store that runs its queries inside tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) *PostgresTaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_email = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID,
			&t.OwnerEmail,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.CreatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "failed to scan task row", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "error iterating task rows", err)
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerEmail,
		task.Title,
		task.Description,
		task.Category,
		task.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	owner string,
	update domain.TaskUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id.String()))

	if update.IsEmpty() {
		return s.checkExists(ctx, log, id, owner)
	}

	args := []any{id, owner}
	var sets []string
	addSet := func(column string, value string) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Category != nil {
		addSet("category", *update.Category)
	}

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1 AND owner_email = $2`

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		log.Error("failed to read update result", slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to read update result", err)
	}
	if n == 0 {
		log.Debug("no task matched update filter")
		return store.ErrTaskNotFound
	}

	log.Debug("task updated", slog.Int("fields", len(sets)))
	return nil
}

func (s *PostgresTaskStore) checkExists(
	ctx context.Context,
	log *slog.Logger,
	id uuid.UUID,
	owner string,
) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND owner_email = $2)`,
		id, owner,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check task existence", slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to check task existence", MapError(err))
	}
	if !exists {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID, owner string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id.String()))

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_email = $2`,
		id, owner,
	)
	if err != nil {
		log.Error("failed to delete task", slog.String("error", err.Error()))
		return false, store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		log.Error("failed to read delete result", slog.String("error", err.Error()))
		return false, store.NewStoreError("task", "delete", "failed to read delete result", err)
	}

	log.Debug("task delete executed", slog.Bool("deleted", n > 0))
	return n > 0, nil
}
