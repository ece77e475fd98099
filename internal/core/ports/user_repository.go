package ports

import (
	"context"

	"github.com/pressroom/auth-service/internal/core/domain"
)

// UserReader is the read side of the credential store. Lookups that miss
// return domain.ErrUserNotFound.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// UserRepository defines the persistence contract for user records.
//
// Create must reject duplicate usernames or emails with domain.ErrUsernameTaken
// or domain.ErrEmailTaken; the store's unique indexes are the real guarantee.
type UserRepository interface {
	UserReader
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user matching either value.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets the role and returns the post-update record.
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
