package ports

import "context"

// LoginResult is returned after a successful OTP login. RefreshToken is handed
// to the transport layer for the cookie only; it is never part of a JSON body.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresIn int // seconds, drives the cookie Max-Age
	Name             string
	Vendor           string
	IsAdmin          bool
}

// RefreshResult carries the re-minted tokens. RefreshToken is the rotated
// replacement for the token that was presented.
type RefreshResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresIn int
}

// SessionService orchestrates the login, refresh, and logout flows.
type SessionService interface {
	// SendOTP looks up the account, issues a one-time code, and dispatches it
	// by email. Returns domain.ErrUserNotFound for unknown accounts; the
	// transport layer masks that as a generic success.
	SendOTP(ctx context.Context, username string) error
	// VerifyCredentials checks username/password independently of the OTP
	// flow; the client composes both checks before dispatching a code.
	VerifyCredentials(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, otp string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	// Logout revokes the presented session server-side. It never fails the
	// caller: a garbled or absent token still results in a cleared cookie.
	Logout(ctx context.Context, refreshToken string) error
}
