package ports

import (
	"context"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

// DeleteScope selects which refresh-token records a delete targets.
type DeleteScope int

const (
	// DeleteAll removes every record for the user (reuse defense on expiry).
	DeleteAll DeleteScope = iota
	// DeleteExpired removes only records whose stored expiry has passed.
	DeleteExpired
	// DeleteActive removes only records whose stored expiry has not passed.
	DeleteActive
)

// TokenRepository persists hashed refresh-token records.
type TokenRepository interface {
	Insert(ctx context.Context, record *domain.RefreshTokenRecord) error
	// FindLatestByUser returns the most recently created record for the user,
	// or domain.ErrRefreshTokenNotFound when none exists.
	FindLatestByUser(ctx context.Context, userID string) (*domain.RefreshTokenRecord, error)
	DeleteByUser(ctx context.Context, userID string, scope DeleteScope) error
}
