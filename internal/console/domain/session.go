package domain

import "time"

// Session is an operator's console login. The backend bearer token is only
// ever stored sealed.
type Session struct {
	ID          string
	UserID      int64
	Username    string
	Email       string
	TokenSealed []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
