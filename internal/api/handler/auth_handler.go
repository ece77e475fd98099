package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/api/middleware"
	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Signup creates a new account and opens a session for it.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.Result(domain.ErrMissingFields)).Inc()
		return fmt.Errorf("%w: %v", domain.ErrMissingFields, err)
	}

	session, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	metrics.SignupsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	c.SetCookie(middleware.SessionCookie(session.Token, h.sessionTTL, h.secureCookie))
	return c.JSON(http.StatusCreated, session.User)
}

// Login authenticates by email and password and opens a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	c.SetCookie(middleware.SessionCookie(session.Token, h.sessionTTL, h.secureCookie))
	return c.JSON(http.StatusOK, session.User)
}
