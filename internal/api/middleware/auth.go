package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/service"
)

// Auth validates the bearer access token and injects its claims into context.
// A missing or malformed header is an access-denied failure; an expired token
// fails distinctly so clients know to refresh rather than re-login.
func Auth(issuer *service.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrAccessDenied
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrAccessDenied
			}

			claims, err := issuer.VerifyAccess(parts[1])
			if err != nil {
				// ErrAccessTokenExpired or ErrAccessDenied, mapped centrally.
				return err
			}

			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("name", claims.Name)
			c.Set("vendor", claims.Vendor)
			c.Set("is_admin", claims.IsAdmin)

			return next(c)
		}
	}
}
