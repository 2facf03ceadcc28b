package ports

import (
	"context"

	"github.com/teamhub/identity-service/internal/core/domain"
)

// RoleRepository defines the persistence boundary for role records.
// Role names are unique; Create must treat a concurrent duplicate insert as
// success so provisioning stays idempotent under races.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	ExistsByName(ctx context.Context, name domain.RoleName) (bool, error)
	Create(ctx context.Context, role *domain.Role) error
}
