package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user_1",
		Username: "alice",
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Vendor:   "V100",
		Role:     domain.RoleStandard,
	}
}

func TestTokenIssuer_MintAccess_Claims(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 30*time.Minute)
	user := testUser()
	user.Role = domain.RoleAdmin

	signed, err := issuer.MintAccess(user)
	if err != nil {
		t.Fatalf("MintAccess failed: %v", err)
	}

	claims, err := issuer.VerifyAccess(signed)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if claims.UserID != "user_1" || claims.Username != "alice" || claims.Name != "Alice Smith" {
		t.Fatalf("unexpected profile claims: %+v", claims)
	}
	if claims.Vendor != "V100" {
		t.Fatalf("expected vendor claim, got %q", claims.Vendor)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected isAdmin claim for admin user")
	}
	if claims.Subject != "user_1" {
		t.Fatalf("expected subject user_1, got %q", claims.Subject)
	}
}

func TestTokenIssuer_VerifyAccess_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Minute)
	other := NewTokenIssuer("different-secret", "refresh-secret", time.Minute, time.Minute)

	signed, err := other.MintAccess(testUser())
	if err != nil {
		t.Fatalf("MintAccess failed: %v", err)
	}

	if _, err := issuer.VerifyAccess(signed); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestTokenIssuer_VerifyAccess_Expired(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, time.Minute)

	signed, err := issuer.MintAccess(testUser())
	if err != nil {
		t.Fatalf("MintAccess failed: %v", err)
	}

	// Expired and malformed are distinct: clients silently refresh on the
	// former and re-authenticate on the latter.
	if _, err := issuer.VerifyAccess(signed); !errors.Is(err, domain.ErrAccessTokenExpired) {
		t.Fatalf("expected ErrAccessTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_VerifyAccess_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Minute)

	if _, err := issuer.VerifyAccess("not-a-jwt"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestTokenIssuer_SecretsAreDistinctPerClass(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Minute)

	refresh, err := issuer.MintRefresh(testUser())
	if err != nil {
		t.Fatalf("MintRefresh failed: %v", err)
	}

	// A refresh token must never pass as an access token.
	if _, err := issuer.VerifyAccess(refresh); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for refresh token, got %v", err)
	}

	access, err := issuer.MintAccess(testUser())
	if err != nil {
		t.Fatalf("MintAccess failed: %v", err)
	}
	if _, err := issuer.VerifyRefresh(access); !errors.Is(err, domain.ErrInvalidRefreshFormat) {
		t.Fatalf("expected ErrInvalidRefreshFormat for access token, got %v", err)
	}
}

func TestTokenIssuer_VerifyRefresh(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Minute)

	signed, err := issuer.MintRefresh(testUser())
	if err != nil {
		t.Fatalf("MintRefresh failed: %v", err)
	}

	userID, err := issuer.VerifyRefresh(signed)
	if err != nil {
		t.Fatalf("VerifyRefresh failed: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("expected subject user_1, got %q", userID)
	}
}

func TestTokenIssuer_VerifyRefresh_Expired(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, -time.Minute)

	signed, err := issuer.MintRefresh(testUser())
	if err != nil {
		t.Fatalf("MintRefresh failed: %v", err)
	}

	if _, err := issuer.VerifyRefresh(signed); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestTokenIssuer_RejectsUnexpectedAlg(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Minute)

	// alg=none with an empty signature must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing with none alg failed: %v", err)
	}

	if _, err := issuer.VerifyAccess(unsigned); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for alg=none, got %v", err)
	}
	if _, err := issuer.VerifyRefresh(unsigned); !errors.Is(err, domain.ErrInvalidRefreshFormat) {
		t.Fatalf("expected ErrInvalidRefreshFormat for alg=none, got %v", err)
	}
}
