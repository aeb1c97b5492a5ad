package sqlite

import (
	"context"
	"time"

	"github.com/zancompute/zanconfig/internal/console/domain"
	"github.com/zancompute/zanconfig/internal/console/store"
)

type sessionsRepo struct {
	db dbtx
}

const createSession = `
INSERT INTO sessions (id, user_id, username, email, token_sealed, created_at, updated_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	created := toMillis(s.CreatedAt)
	_, err := r.db.ExecContext(ctx, createSession,
		s.ID, s.UserID, s.Username, s.Email, s.TokenSealed,
		created, created, toMillis(s.ExpiresAt),
	)
	return err
}

const getSessionByID = `
SELECT id, user_id, username, email, token_sealed, created_at, expires_at
FROM sessions
WHERE id = ?`

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var (
		s                  domain.Session
		created, expiresAt int64
	)

	err := r.db.QueryRowContext(ctx, getSessionByID, id).Scan(
		&s.ID, &s.UserID, &s.Username, &s.Email, &s.TokenSealed, &created, &expiresAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.CreatedAt = fromMillis(created)
	s.ExpiresAt = fromMillis(expiresAt)
	return s, nil
}

const updateSessionUser = `
UPDATE sessions SET username = ?, email = ?, updated_at = ?
WHERE id = ?`

func (r *sessionsRepo) UpdateSessionUser(ctx context.Context, id, username, email string) error {
	res, err := r.db.ExecContext(ctx, updateSessionUser, username, email, toMillis(time.Now()), id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ?`

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredSessions, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countActiveSessions = `SELECT COUNT(*) FROM sessions WHERE expires_at > ?`

func (r *sessionsRepo) CountActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countActiveSessions, toMillis(now)).Scan(&n)
	return n, err
}
