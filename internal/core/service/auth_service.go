package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a new account and opens a session for it.
//
// The role is taken from the caller as-is; any of the five roles, Admin
// included, can be self-assigned here.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Session, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrMissingFields
	}

	// Advisory only: concurrent signups are settled by the unique indexes on insert.
	existing, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil:
		if existing.Username == in.Username {
			return nil, domain.ErrUsernameTaken
		}
		if existing.Email == in.Email {
			return nil, domain.ErrEmailTaken
		}
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("signup: lookup existing user: %w", err)
	}

	if !domain.IsStrongPassword(in.Password) {
		return nil, domain.ErrWeakPassword
	}
	if domain.PasswordTooLong(in.Password) {
		return nil, domain.ErrPasswordTooLong
	}

	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.NewUser(in.Username, in.Email, hash, role, s.now()))
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: create user: %w", err)
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", user.Role.String()).
		Msg("user signed up")

	return session, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail with distinct errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	ok, err := s.hasher.Compare(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("login: compare password: %w", err)
	}
	if !ok {
		s.log.Debug().Str("user_id", user.ID).Msg("login rejected: incorrect password")
		return nil, domain.ErrIncorrectPassword
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return session, nil
}

func (s *AuthService) openSession(user *domain.User) (*domain.Session, error) {
	issuedAt := s.now()
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.Session{
		User:      user,
		Token:     token,
		ExpiresAt: issuedAt.Add(s.tokenTTL),
	}, nil
}
