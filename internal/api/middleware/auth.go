package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/api/metrics"
	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

// ValidateJWT runs the session's token gate over the Authorization header
// and hands the derived request context to the next handler. Rejections are
// returned to the HTTP error handler unchanged.
func ValidateJWT(session ports.AuthSession) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, err := session.Validate(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func validationResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, domain.ErrAuthorizationInvalid):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	default:
		return "invalid"
	}
}
