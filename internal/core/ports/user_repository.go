package ports

import (
	"context"

	"github.com/teamhub/identity-service/internal/core/domain"
)

// UserRepository defines the persistence boundary for user records.
//
// Create must rely on storage-level unique constraints as the authoritative
// uniqueness guard and return domain.ErrDuplicateUsername or
// domain.ErrDuplicateEmail when one is violated; the Exists checks are a
// fast path only and are inherently racy on their own.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// AddRole attaches a role to the user with set semantics in a single
	// atomic update; re-adding a held role is a no-op.
	AddRole(ctx context.Context, userID string, role domain.Role) error
	List(ctx context.Context) ([]domain.User, error)
}
