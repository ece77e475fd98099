// Package metrics defines and registers all custom Prometheus metrics for the
// newsroom auth API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on import; HTTP
// request metrics come from echoprometheus and share the same namespace.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pressroom/auth-service/internal/core/domain"
)

const Namespace = "newsroom"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "ok" or the failure reason from Result (e.g. "email_taken")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "no_such_user", "incorrect_password", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleAssignmentsTotal counts role assignment attempts.
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of role assignment attempts, by result.",
	},
	[]string{"result"},
)

// SessionChecksTotal counts session middleware decisions.
var SessionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "session_checks_total",
		Help:      "Total number of session cookie checks, by result.",
	},
	[]string{"result"},
)

// ── Hashing metrics ───────────────────────────────────────────────────────────

// PasswordHashDuration measures a single bcrypt operation inside the hash pool.
// Label:
//   - op: "hash" or "compare"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and compare operations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"op"},
)

// HashPoolQueueDepth tracks jobs waiting for a hashing worker.
var HashPoolQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "hash_pool_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// UserCacheTotal counts user cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "user_cache_lookups_total",
		Help:      "Total number of user cache lookups, by result.",
	},
	[]string{"result"},
)

// Result maps an operation outcome to a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, domain.ErrWeakPassword):
		return "weak_password"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "password_too_long"
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrNoSuchUser):
		return "no_such_user"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return "incorrect_password"
	case errors.Is(err, domain.ErrNoToken):
		return "no_token"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrSessionUserNotFound):
		return "session_user_not_found"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}
