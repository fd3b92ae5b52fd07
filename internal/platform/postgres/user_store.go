package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskmate-api/internal/domain"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx returns a store that runs its queries inside tx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) *PostgresUserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// CreateIfNotExists implements store.UserStore.CreateIfNotExists.
// The unique index on email makes the insert-if-absent a single statement.
func (s *PostgresUserStore) CreateIfNotExists(ctx context.Context, user *domain.User) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO users (id, email, profile, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`

	var id sql.NullString
	err := s.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		string(user.Profile),
		user.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user already exists")
		return false, nil
	}
	if err != nil {
		log.Error("failed to insert user", slog.String("error", err.Error()))
		return false, store.NewStoreError("user", "create", "failed to insert user", MapError(err))
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return true, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, email, profile, created_at FROM users WHERE email = $1`

	var (
		user    domain.User
		profile []byte
	)
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&profile,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to query user", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "failed to query user", MapError(err))
	}

	user.Profile = profile
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}
