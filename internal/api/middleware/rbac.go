package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

// RequireAnyRole lets the request through when the logged in user holds at
// least one of roles. It must run after ValidateJWT.
func RequireAnyRole(session ports.AuthSession, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if !session.IsLoggedIn(ctx) {
				return domain.ErrAuthorizationInvalid
			}
			if !session.HasAnyRole(ctx, roles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
