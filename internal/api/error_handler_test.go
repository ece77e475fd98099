package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pressroom/auth-service/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "Fill in all the details to create an account"},
		{"wrapped missing fields", fmt.Errorf("%w: email is required", domain.ErrMissingFields), http.StatusBadRequest, "Fill in all the details to create an account"},
		{"weak password", domain.ErrWeakPassword, http.StatusBadRequest, domain.ErrWeakPassword.Error()},
		{"password too long", domain.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes long"},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest, "Username is already taken."},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest, "Email is already registered"},
		{"no such user", domain.ErrNoSuchUser, http.StatusUnauthorized, "No user with that email"},
		{"incorrect password", domain.ErrIncorrectPassword, http.StatusUnauthorized, "Incorrect password"},
		{"no token", domain.ErrNoToken, http.StatusUnauthorized, "Unauthorized - No token provided"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized - Invalid token"},
		{"session user gone", domain.ErrSessionUserNotFound, http.StatusUnauthorized, "Unauthorized - User not found"},
		{"permission denied", domain.ErrPermissionDenied, http.StatusForbidden, "Permission denied. Only admins can assign roles."},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Forbidden - insufficient role"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"internal", errors.New("mongo: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_LogsInternalCause(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", nil), rec)

	NewHTTPErrorHandler(log)(errors.New("bcrypt exploded"), c)

	if strings.Contains(rec.Body.String(), "bcrypt") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "bcrypt exploded") {
		t.Fatalf("expected cause in log, got %s", buf.String())
	}
}
