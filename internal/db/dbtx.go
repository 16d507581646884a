package db

import (
	"context"
	"database/sql"
)

// DBTX is what the template catalog repository needs from a connection.
// Both the catalog *sql.DB and a *sql.Tx opened by WithinTx satisfy it, so
// one repository type serves single reads and directory imports alike.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
