package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pressroom/auth-service/internal/core/domain"
	"github.com/pressroom/auth-service/internal/core/ports"
)

// RoleService implements admin-gated role assignment.
type RoleService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewRoleService(repo ports.UserRepository, log zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, log: log}
}

// AssignRole sets targetUserID's role when actingAdminID names an Admin.
// Only Admin, Editor and Support can be assigned.
func (s *RoleService) AssignRole(ctx context.Context, actingAdminID, targetUserID, role string) (*domain.User, error) {
	actor, err := s.repo.FindByID(ctx, actingAdminID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("assign role: find acting user: %w", err)
	}
	if !actor.IsAdmin() {
		s.log.Warn().
			Str("actor_id", actingAdminID).
			Str("target_id", targetUserID).
			Msg("role assignment denied")
		return nil, domain.ErrPermissionDenied
	}

	newRole := domain.Role(role)
	if !newRole.Assignable() {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.repo.UpdateRole(ctx, targetUserID, newRole)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("assign role: update user: %w", err)
	}

	s.log.Info().
		Str("actor_id", actor.ID).
		Str("target_id", updated.ID).
		Str("role", updated.Role.String()).
		Msg("role assigned")

	return updated, nil
}
