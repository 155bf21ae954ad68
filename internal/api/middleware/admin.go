package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

// AdminOnly gates administrative routes on the access token's admin claim.
// It must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get("is_admin").(bool)
			if !isAdmin {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
