package domain

import "time"

// RefreshTokenRecord is the server-side representation of an issued refresh
// token. Only the bcrypt hash of the signed token string is ever persisted.
type RefreshTokenRecord struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record's absolute expiry has passed.
func (r *RefreshTokenRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
