// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it should carry the integration build tag.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/taskmate-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// IsIntegrationTestEnvironment returns true if a test database URL is set.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns DATABASE_URL, falling back to TASKMATE_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("TASKMATE_TEST_DB_URL")
}

// Open connects to the test database and applies all migrations.
// It returns an error instead of failing a test so it can be used from TestMain.
func Open() (*sql.DB, error) {
	db, err := sql.Open("pgx", GetTestDatabaseURL())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := postgres.Migrate(ctx, db, nil); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This keeps tests isolated from each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
