package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode          = "23505"
	checkViolationCode           = "23514"
	notNullViolationCode         = "23502"
	characterNotInRepertoireCode = "22021"
	untranslatableCharacterCode  = "22P05"
)

// MapError maps a database error to the matching store error, wrapping the
// original so the cause is still visible in logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		case characterNotInRepertoireCode, untranslatableCharacterCode:
			return fmt.Errorf("%w: unstorable character: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// rowsAffected returns the affected row count of result.
func rowsAffected(result sql.Result) (int64, error) {
	if result == nil {
		return 0, fmt.Errorf("nil result")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
