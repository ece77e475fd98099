package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/infrastructure/token"
)

type stubUsers struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newIssuer(t *testing.T, secret string) *token.JWTIssuer {
	t.Helper()
	issuer, err := token.NewJWTIssuer([]byte(secret), 24*time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func runSession(t *testing.T, cookie *http.Cookie, users *stubUsers) (*domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	handler := Session(newIssuer(t, "secret"), users)(func(c echo.Context) error {
		seen = UserFrom(c)
		return c.NoContent(http.StatusOK)
	})
	return seen, handler(c)
}

func TestSession_ValidCookie(t *testing.T) {
	users := &stubUsers{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "alice", Role: domain.RoleEditor},
	}}
	tok, _ := newIssuer(t, "secret").Issue("u1")

	user, err := runSession(t, &http.Cookie{Name: SessionCookieName, Value: tok}, users)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if user == nil || user.Username != "alice" || user.Role != domain.RoleEditor {
		t.Fatalf("user not injected: %+v", user)
	}
}

func TestSession_Rejections(t *testing.T) {
	users := &stubUsers{users: map[string]*domain.User{}}
	valid, _ := newIssuer(t, "secret").Issue("u1")
	foreign, _ := newIssuer(t, "other").Issue("u1")

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   error
	}{
		{"no cookie", nil, domain.ErrNoToken},
		{"empty cookie", &http.Cookie{Name: SessionCookieName, Value: ""}, domain.ErrNoToken},
		{"other cookie", &http.Cookie{Name: "session", Value: valid}, domain.ErrNoToken},
		{"garbage", &http.Cookie{Name: SessionCookieName, Value: "not-a-token"}, domain.ErrInvalidToken},
		{"wrong secret", &http.Cookie{Name: SessionCookieName, Value: foreign}, domain.ErrInvalidToken},
		{"deleted user", &http.Cookie{Name: SessionCookieName, Value: valid}, domain.ErrSessionUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := runSession(t, tt.cookie, users)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if user != nil {
				t.Fatalf("next must not run")
			}
		})
	}
}

func TestSession_StoreFailureIsInternal(t *testing.T) {
	boom := errors.New("mongo down")
	tok, _ := newIssuer(t, "secret").Issue("u1")

	_, err := runSession(t, &http.Cookie{Name: SessionCookieName, Value: tok}, &stubUsers{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrSessionUserNotFound) {
		t.Fatalf("store failures must not look like missing users")
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("tok", 24*time.Hour, true)

	if c.Name != "jwt" || c.Value != "tok" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly || !c.Secure {
		t.Fatalf("expected HttpOnly and Secure")
	}
	if c.MaxAge != 86400 {
		t.Fatalf("expected MaxAge 86400, got %d", c.MaxAge)
	}
}
