package ports

import (
	"context"

	"github.com/teamhub/identity-service/internal/core/domain"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	// SignIn authenticates username+password. Unknown usernames and wrong
	// passwords both fail with domain.ErrInvalidCredentials so callers
	// cannot enumerate accounts.
	SignIn(ctx context.Context, username, password string) (string, domain.Principal, error)
}

// RegistrationInput carries a signup request. RoleLabels distinguishes
// absent (nil — assign the default USER role) from explicitly empty
// (non-nil zero length — assign no roles).
type RegistrationInput struct {
	Username   string
	Email      string
	Password   string
	RoleLabels []string
}

// RegistrationService creates new user accounts.
type RegistrationService interface {
	SignUp(ctx context.Context, in RegistrationInput) (*domain.User, error)
}

// ProvisioningService manages the baseline role records and admin elevation.
// Both operations are idempotent.
type ProvisioningService interface {
	EnsureBaselineRoles(ctx context.Context) error
	PromoteToAdmin(ctx context.Context, userID string) error
}
