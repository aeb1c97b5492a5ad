package store

import (
	"context"
	"errors"
	"time"

	"github.com/zancompute/zanconfig/internal/console/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the console's own state.
// Client records live in the backend; the console only keeps sessions.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. An error from fn rolls the
	// transaction back, nil commits it.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Sessions interface {
	// CreateSession inserts a new session (id is provided by app via ULID).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns a session whether or not it has expired.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// UpdateSessionUser refreshes the cached profile after a profile edit.
	UpdateSessionUser(ctx context.Context, id, username, email string) error

	// DeleteSession removes a session. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions that expired before now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// CountActiveSessions returns the number of sessions still valid at now.
	CountActiveSessions(ctx context.Context, now time.Time) (int64, error)
}
