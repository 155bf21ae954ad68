package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

const refreshCookieName = "refresh_token"

// genericOTPMessage is returned for both known and unknown accounts so the
// endpoint cannot be used to probe which usernames exist.
const genericOTPMessage = "If the account exists, an OTP has been sent to its email"

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// SendOTP dispatches a one-time code to the account's email address.
//
// @Summary      Request an OTP for login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Account username"
// @Success      200   {object}  messageResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SendOTP(c.Request().Context(), req.Username); err != nil {
		// Unknown accounts get the same generic answer as the happy path.
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, messageResponse{Success: true, Message: genericOTPMessage})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: genericOTPMessage})
}

// VerifyCredentials checks username/password ahead of OTP dispatch.
//
// @Summary      Verify username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyCredentialsRequest  true  "Credentials"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/verify-credentials [post]
func (h *AuthHandler) VerifyCredentials(c echo.Context) error {
	var req verifyCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.VerifyCredentials(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Credentials verified"})
}

// Login exchanges a valid OTP for an access token and a refresh cookie.
//
// @Summary      Complete login with an OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Username and OTP"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Username, req.OTP)
	if err != nil {
		return err
	}

	c.SetCookie(refreshCookie(result.RefreshToken, result.RefreshExpiresIn))

	return c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		IsAdmin:     result.IsAdmin,
		Name:        result.Name,
		Vendor:      result.Vendor,
		AccessToken: result.AccessToken,
		Message:     "Login successful",
	})
}

// Refresh exchanges the cookie-borne refresh token for a new access token.
// The refresh token itself is rotated: the response carries a replacement cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  refreshResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return domain.ErrRefreshTokenNotFound
	}

	result, err := h.sessions.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		// A lapsed stored record tears the session down; clearing the cookie
		// here keeps the client from replaying a token that can never succeed.
		if errors.Is(err, domain.ErrSessionExpired) {
			c.SetCookie(clearedRefreshCookie())
		}
		return err
	}

	c.SetCookie(refreshCookie(result.RefreshToken, result.RefreshExpiresIn))

	return c.JSON(http.StatusOK, refreshResponse{
		Success:     true,
		AccessToken: result.AccessToken,
		Message:     "Token refreshed successfully",
	})
}

// Logout revokes the current session. It is idempotent: absent or unverifiable
// cookies still produce a success and a cleared cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		// Best effort; the service logs and swallows cleanup failures.
		_ = h.sessions.Logout(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(clearedRefreshCookie())
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Logged out successfully"})
}

// refreshCookie builds the HTTP-only refresh cookie. Max-Age matches the
// token's own expiry.
func refreshCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// clearedRefreshCookie must carry the exact attribute flags of refreshCookie:
// clearing with mismatched attributes silently no-ops in most HTTP stacks.
func clearedRefreshCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
