package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
)

// ProvisioningService creates missing baseline roles and elevates users to
// admin. Both operations are idempotent and safe to repeat.
type ProvisioningService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewProvisioningService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *ProvisioningService {
	return &ProvisioningService{users: users, roles: roles, log: log}
}

// EnsureBaselineRoles creates each of USER, MODERATOR and ADMIN if no record
// with that name exists yet. The role repository treats a concurrent
// duplicate insert as success, so parallel callers cannot duplicate a role.
func (s *ProvisioningService) EnsureBaselineRoles(ctx context.Context) error {
	for _, name := range domain.BaselineRoles() {
		exists, err := s.roles.ExistsByName(ctx, name)
		if err != nil {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := s.roles.Create(ctx, &domain.Role{Name: name}); err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
		s.log.Info().Str("role", string(name)).Msg("baseline role created")
	}
	return nil
}

// PromoteToAdmin adds the ADMIN role to the user's role set. The update has
// set semantics, so repeated calls leave the user holding ADMIN exactly once.
func (s *ProvisioningService) PromoteToAdmin(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	role, err := s.roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("find admin role: %w", err)
	}

	if err := s.users.AddRole(ctx, user.ID, *role); err != nil {
		return fmt.Errorf("add admin role: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user promoted to admin")
	return nil
}
