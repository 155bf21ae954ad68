package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * time.Minute
)

// AccessClaims is the payload carried by access tokens. It mirrors the stored
// profile so protected handlers never need a user lookup.
type AccessClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Vendor   string `json:"vendor,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// refreshClaims carries only the subject identifier, keeping the surface
// minimal if a token leaks before it is hashed at rest.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the two token classes. Each class is signed
// with its own secret, so compromise of one does not compromise the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL is the lifetime applied to refresh tokens and their stored records.
func (t *TokenIssuer) RefreshTTL() time.Duration {
	return t.refreshTTL
}

// MintAccess returns a signed access token carrying the user's profile claims.
func (t *TokenIssuer) MintAccess(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Vendor:   user.Vendor,
		IsAdmin:  user.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
}

// MintRefresh returns a signed refresh token whose only claim is the subject.
func (t *TokenIssuer) MintRefresh(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
}

// VerifyAccess checks signature and expiry of an access token. Expired and
// malformed are distinct failure kinds: expired prompts a silent refresh,
// malformed is treated as hostile input.
func (t *TokenIssuer) VerifyAccess(signed string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(signed, claims, t.keyFunc(t.accessSecret))
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.ErrAccessTokenExpired
	default:
		return nil, domain.ErrAccessDenied
	}
}

// VerifyRefresh checks signature and expiry of a refresh token and returns the
// subject identifier.
func (t *TokenIssuer) VerifyRefresh(signed string) (string, error) {
	claims := &refreshClaims{}
	_, err := jwt.ParseWithClaims(signed, claims, t.keyFunc(t.refreshSecret))
	switch {
	case err == nil:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrSessionExpired
	default:
		return "", domain.ErrInvalidRefreshFormat
	}
}

func (t *TokenIssuer) keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}
}
