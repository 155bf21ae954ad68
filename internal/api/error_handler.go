package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

// errorResponse is the canonical failure envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the auth/session error taxonomy to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// 401: the caller should re-prompt or re-authenticate.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusUnauthorized, "Invalid or missing OTP"
	case errors.Is(err, domain.ErrAccessTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	}

	// 403: token problems; the caller must start a fresh login.
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, "Access denied. Authorization failed."
	case errors.Is(err, domain.ErrInvalidRefreshFormat):
		return http.StatusForbidden, "Invalid refresh token format"
	case errors.Is(err, domain.ErrRefreshTokenNotFound):
		return http.StatusForbidden, "Refresh token not found"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusForbidden, "Session expired"
	case errors.Is(err, domain.ErrInvalidRefreshToken):
		return http.StatusForbidden, "Invalid refresh token"
	case errors.Is(err, domain.ErrAdminProtected):
		return http.StatusForbidden, "Cannot delete admin user"
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, domain.ErrOTPDispatchFailed):
		return http.StatusInternalServerError, "Failed to send OTP"
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.Is(err, domain.ErrStoreUnavailable):
		// Log the cause; the client sees only the degraded-store message.
		log.Error().Err(err).Str("path", c.Path()).Msg("store unavailable")
		return http.StatusInternalServerError, "Server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
