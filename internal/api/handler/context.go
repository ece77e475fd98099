package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/api/middleware"
	"github.com/pressroom/auth-service/internal/core/domain"
)

// CurrentUser returns the user loaded by the Session middleware, or nil on
// routes that are not behind it.
func CurrentUser(c echo.Context) *domain.User {
	return middleware.UserFrom(c)
}

// actingAdmin resolves the admin id a role assignment runs as. With session
// enforcement the claimed id must be the session user; without it the claimed
// id is trusted as-is.
func actingAdmin(c echo.Context, claimedID string, enforceSession bool) (string, error) {
	if !enforceSession {
		return claimedID, nil
	}

	user := CurrentUser(c)
	if user == nil {
		return "", domain.ErrNoToken
	}
	if user.ID != claimedID {
		return "", domain.ErrPermissionDenied
	}
	return user.ID, nil
}
