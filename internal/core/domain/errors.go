package domain

import "errors"

// Validation errors.
var (
	ErrMissingFields = errors.New("Fill in all the details to create an account")
	ErrWeakPassword  = errors.New("Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)")
	ErrInvalidRole   = errors.New("Invalid role")

	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes long")
)

// Conflict errors.
var (
	ErrUsernameTaken = errors.New("Username is already taken.")
	ErrEmailTaken    = errors.New("Email is already registered")
)

// Authentication errors.
var (
	ErrNoSuchUser          = errors.New("No user with that email")
	ErrIncorrectPassword   = errors.New("Incorrect password")
	ErrNoToken             = errors.New("Unauthorized - No token provided")
	ErrInvalidToken        = errors.New("Unauthorized - Invalid token")
	ErrSessionUserNotFound = errors.New("Unauthorized - User not found")
)

// ErrPermissionDenied is returned when a non-admin attempts a role assignment.
var ErrPermissionDenied = errors.New("Permission denied. Only admins can assign roles.")

// ErrUserNotFound is the store-level miss for lookups by id or email.
var ErrUserNotFound = errors.New("User not found")

// ErrForbidden is returned when the session user's role does not allow a route.
var ErrForbidden = errors.New("Forbidden - insufficient role")
