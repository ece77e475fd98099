package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/core/domain"
)

func TestHealthHandler_Root(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1", nil), rec)

	if err := NewHealthHandler(nil).Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var msg string
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if msg != "API Is Working Well!" {
		t.Fatalf("unexpected body %q", msg)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		deps     map[string]Pinger
		wantCode int
		want     string
	}{
		{
			name: "all up",
			deps: map[string]Pinger{
				"mongodb": func(context.Context) error { return nil },
				"redis":   func(context.Context) error { return nil },
			},
			wantCode: http.StatusOK,
			want:     "ok",
		},
		{
			name: "redis down",
			deps: map[string]Pinger{
				"mongodb": func(context.Context) error { return nil },
				"redis":   func(context.Context) error { return errors.New("dial tcp: refused") },
			},
			wantCode: http.StatusServiceUnavailable,
			want:     "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthHandler(tt.deps).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.want || len(resp.Dependencies) != len(tt.deps) {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

type stubUserService struct {
	users []*domain.User
	err   error
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	return s.users, s.err
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{users: []*domain.User{
		{ID: "2", Username: "newer"},
		{ID: "1", Username: "older"},
	}}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/users", nil), rec)

	if err := NewUserHandler(svc).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 || users[0]["username"] != "newer" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUserHandler_ListError(t *testing.T) {
	boom := errors.New("cursor closed")
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/users", nil), httptest.NewRecorder())

	if err := NewUserHandler(&stubUserService{err: boom}).List(c); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}
