package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/zancompute/zanconfig/internal/console/store"
)

// ErrNestedTx is returned when a transaction is started from inside one.
var ErrNestedTx = errors.New("sqlite: nested transactions are not supported")

// txStore scopes the session repo to one *sql.Tx. Lifecycle methods that
// belong to the outer Store are no-ops here.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, ErrNestedTx }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return ErrNestedTx }

func (t *txStore) ApplyMigrations() error { return nil }
func (t *txStore) Close() error           { return nil }
func (t *txStore) Ping(context.Context) error {
	return nil
}
