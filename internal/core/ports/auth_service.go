package ports

import (
	"context"

	"github.com/pressroom/auth-service/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to AuthService.Signup.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

type RoleService interface {
	AssignRole(ctx context.Context, actingAdminID, targetUserID, role string) (*domain.User, error)
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
}
