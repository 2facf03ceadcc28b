package service

import (
	"context"
	"fmt"

	"github.com/teamhub/identity-service/internal/core/domain"
)

// In-memory repositories shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
	// createErr forces Create to fail with this error, simulating a
	// storage-level unique constraint violation.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) AddRole(_ context.Context, userID string, role domain.Role) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.HasRole(role.Name) {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

type stubRoleRepo struct {
	roles  map[domain.RoleName]*domain.Role
	nextID int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[domain.RoleName]*domain.Role)}
}

// seedBaseline installs all baseline roles, as provisioning would.
func (r *stubRoleRepo) seedBaseline() {
	for _, name := range domain.BaselineRoles() {
		_ = r.Create(context.Background(), &domain.Role{Name: name})
	}
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	if role, ok := r.roles[name]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) ExistsByName(_ context.Context, name domain.RoleName) (bool, error) {
	_, ok := r.roles[name]
	return ok, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	if _, ok := r.roles[role.Name]; ok {
		return nil // duplicate insert is success, mirroring the mongo repo
	}
	r.nextID++
	r.roles[role.Name] = &domain.Role{ID: fmt.Sprintf("role_%d", r.nextID), Name: role.Name}
	return nil
}
