package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamhub/identity-service/internal/core/domain"
)

func TestProvisioningService_EnsureBaselineRoles_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := NewProvisioningService(users, roles, zerolog.Nop())

	if err := svc.EnsureBaselineRoles(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.EnsureBaselineRoles(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(roles.roles) != 3 {
		t.Fatalf("expected exactly 3 role records, got %d", len(roles.roles))
	}
	for _, name := range domain.BaselineRoles() {
		if _, err := roles.FindByName(context.Background(), name); err != nil {
			t.Fatalf("missing baseline role %s: %v", name, err)
		}
	}
}

func TestProvisioningService_PromoteToAdmin_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	roles.seedBaseline()
	svc := NewProvisioningService(users, roles, zerolog.Nop())

	u := registerTestUser(t, users, roles, "alice", "alice@example.com", "p1", nil)

	if err := svc.PromoteToAdmin(context.Background(), u.ID); err != nil {
		t.Fatalf("first promote: %v", err)
	}
	if err := svc.PromoteToAdmin(context.Background(), u.ID); err != nil {
		t.Fatalf("second promote: %v", err)
	}

	promoted, err := users.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("find promoted user: %v", err)
	}
	admins := 0
	for _, r := range promoted.Roles {
		if r.Name == domain.RoleAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Fatalf("expected ADMIN held exactly once, got %d", admins)
	}
	if !promoted.HasRole(domain.RoleUser) {
		t.Fatalf("promotion must not drop existing roles")
	}
}

func TestProvisioningService_PromoteToAdmin_NotFound(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	svc := NewProvisioningService(users, roles, zerolog.Nop())

	// Unknown user.
	roles.seedBaseline()
	if err := svc.PromoteToAdmin(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: expected ErrNotFound, got %v", err)
	}

	// Known user but ADMIN role record missing.
	bare := newStubRoleRepo()
	bare.seedBaseline()
	u := registerTestUser(t, users, bare, "bob", "bob@example.com", "p1", nil)
	empty := newStubRoleRepo()
	svc = NewProvisioningService(users, empty, zerolog.Nop())
	if err := svc.PromoteToAdmin(context.Background(), u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing admin role: expected ErrNotFound, got %v", err)
	}
}
