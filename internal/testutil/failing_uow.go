package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/prefyhq/prefy/internal/db"
)

// ErrInjected is returned by FailingUoW when it trips.
var ErrInjected = errors.New("injected write failure")

// FailingUoW runs the callback in a real transaction but fails the Nth
// write (1-based) so tests can check that a batch is rolled back as a whole.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting catalog transaction: %w", err)
	}
	if err := fn(ctx, &tripwireTx{DBTX: tx, failOn: u.FailOn}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type tripwireTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
}

func (t *tripwireTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if t.writes.Add(1) == t.failOn {
		return nil, ErrInjected
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}
