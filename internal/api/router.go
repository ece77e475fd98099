package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pressroom/auth-service/docs"
	"github.com/pressroom/auth-service/internal/api/handler"
	"github.com/pressroom/auth-service/internal/api/metrics"
	"github.com/pressroom/auth-service/internal/api/middleware"
	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
	"github.com/pressroom/auth-service/internal/core/service"
)

// Deps carries everything the HTTP layer needs. Users should already be
// wrapped by the user cache when one is configured.
type Deps struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer

	SessionTTL     time.Duration
	EnforceSession bool
	CookieSecure   bool

	// CORSOrigins may call the API from a browser with credentials.
	CORSOrigins []string

	// Readiness checks keyed by dependency name.
	Pingers map[string]handler.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderXRequestID},
			AllowCredentials: true,
		}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(d.Users, d.Hasher, d.Tokens, d.SessionTTL, d.Log.With().Str("component", "auth").Logger())
	roleService := service.NewRoleService(d.Users, d.Log.With().Str("component", "roles").Logger())
	userService := service.NewUserService(d.Users)

	authHandler := handler.NewAuthHandler(authService, d.SessionTTL, d.CookieSecure)
	roleHandler := handler.NewRoleHandler(roleService, d.EnforceSession)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(d.Pingers)

	session := middleware.Session(d.Tokens, d.Users)

	// --- API v1 ---
	v1 := e.Group("/api/v1")
	v1.GET("", healthHandler.Root)

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	var assignMW []echo.MiddlewareFunc
	if d.EnforceSession {
		assignMW = append(assignMW, session)
	}
	auth.PATCH("/assign/:adminId/:userId", roleHandler.Assign, assignMW...)
	auth.POST("/assign/:adminId/:userId", roleHandler.Assign, assignMW...)

	v1.GET("/users", userHandler.List,
		session,
		middleware.RequireRole(domain.RoleAdmin, domain.RoleEditor, domain.RoleSupport),
	)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
