package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamhub/identity-service/internal/core/domain"
	"github.com/teamhub/identity-service/internal/core/ports"
)

// RegistrationService orchestrates signup: uniqueness checks, password
// hashing, role resolution, and persistence.
type RegistrationService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

func NewRegistrationService(users ports.UserRepository, roles ports.RoleRepository, hasher *PasswordHasher, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{users: users, roles: roles, hasher: hasher, log: log}
}

// SignUp creates a new user. The exists checks are only a fast path; the
// repository's unique indexes are the authoritative guard, and a
// constraint violation from Create surfaces as the same duplicate error.
func (s *RegistrationService) SignUp(ctx context.Context, in ports.RegistrationInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles, err := s.resolveRoles(ctx, in.RoleLabels)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveRoles maps requested role labels to canonical role records.
//
// A nil slice means the caller did not ask for roles at all, which gets the
// default USER role. A non-nil empty slice resolves to no roles. Every
// unrecognized label silently falls back to USER; that permissive default is
// long-standing behavior and is kept as-is, but each fallback is logged so
// its frequency can be measured. A missing baseline role record is fatal:
// it means provisioning was never run.
func (s *RegistrationService) resolveRoles(ctx context.Context, labels []string) ([]domain.Role, error) {
	names := make(map[domain.RoleName]struct{})
	if labels == nil {
		names[domain.RoleUser] = struct{}{}
	} else {
		for _, label := range labels {
			name := domain.ResolveRoleLabel(label)
			if name == domain.RoleUser && label != "user" {
				s.log.Debug().Str("label", label).Msg("unrecognized role label, falling back to USER")
			}
			names[name] = struct{}{}
		}
	}

	roles := make([]domain.Role, 0, len(names))
	for _, name := range domain.BaselineRoles() {
		if _, ok := names[name]; !ok {
			continue
		}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}
