// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. Schema changes live in migrations/ as goose SQL
// files embedded into the binary and applied at startup by Migrate.
package postgres
