package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/core/domain"
)

// RequireRole enforces role-based access control on routes behind Session.
// The role is read from the live user record, never from the token.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return domain.ErrNoToken
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
