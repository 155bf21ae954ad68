package domain

import "errors"

// Authentication and session failures. Each maps to a distinct HTTP status in
// the API error handler so clients can decide whether to retry, re-prompt for
// a code, or force a full re-login.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or missing OTP")
	ErrOTPDispatchFailed  = errors.New("failed to send OTP")

	ErrInvalidRefreshFormat = errors.New("invalid refresh token format")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")

	ErrAccessDenied       = errors.New("access denied")
	ErrAccessTokenExpired = errors.New("token expired")
)

// User management failures.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrAdminProtected = errors.New("cannot delete admin user")
)

// Infrastructure failures. Store connectivity loss degrades individual
// requests; it never exits the process.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrTimeout          = errors.New("operation timed out")
)
