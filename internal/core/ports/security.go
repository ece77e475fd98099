package ports

import "context"

// PasswordHasher hashes and verifies passwords with a one-way salted function.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Compare returns false with a nil error on mismatch. Errors are internal
	// failures, never authentication outcomes.
	Compare(ctx context.Context, hash, plaintext string) (bool, error)
}

// TokenIssuer signs and verifies session tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns domain.ErrInvalidToken for tampered, malformed or expired
	// tokens alike.
	Verify(token string) (string, error)
}
