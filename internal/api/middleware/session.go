package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "jwt"

	// ContextKeyUser holds the *domain.User loaded by Session.
	ContextKeyUser = "user"
)

// Session authenticates the request from its session cookie, loads the live
// user record, and injects it into the context under ContextKeyUser.
func Session(tokens ports.TokenIssuer, users ports.UserReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authenticate(c, tokens, users)
			metrics.SessionChecksTotal.WithLabelValues(metrics.Result(err)).Inc()
			if err != nil {
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

func authenticate(c echo.Context, tokens ports.TokenIssuer, users ports.UserReader) (*domain.User, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrNoToken
	}

	userID, err := tokens.Verify(cookie.Value)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionUserNotFound
		}
		return nil, fmt.Errorf("session: load user: %w", err)
	}
	return user, nil
}

// UserFrom returns the user injected by Session, or nil when the route is not
// behind the middleware.
func UserFrom(c echo.Context) *domain.User {
	u, _ := c.Get(ContextKeyUser).(*domain.User)
	return u
}

// SessionCookie builds the HTTP-only cookie that carries a session token.
// Its lifetime must equal the token's so both expire together.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
