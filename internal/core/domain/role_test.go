package domain

import "testing"

func TestResolveRoleLabel(t *testing.T) {
	cases := []struct {
		label string
		want  RoleName
	}{
		{"admin", RoleAdmin},
		{"mod", RoleModerator},
		{"user", RoleUser},
		{"", RoleUser},
		{"wizard", RoleUser},
		{"Admin", RoleUser}, // case-sensitive
		{"ADMIN", RoleUser},
		{"moderator", RoleUser},
	}
	for _, tc := range cases {
		if got := ResolveRoleLabel(tc.label); got != tc.want {
			t.Fatalf("ResolveRoleLabel(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestRoleNameIsValid(t *testing.T) {
	for _, name := range BaselineRoles() {
		if !name.IsValid() {
			t.Fatalf("baseline role %s must be valid", name)
		}
	}
	if RoleName("SUPERUSER").IsValid() {
		t.Fatalf("unknown role name must not be valid")
	}
}

func TestPrincipalProjection(t *testing.T) {
	u := &User{
		ID:       "user_1",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []Role{{ID: "r1", Name: RoleAdmin}, {ID: "r2", Name: RoleUser}},
	}

	p := NewPrincipal(u)
	if p.ID != u.ID || p.Username != u.Username || p.Email != u.Email {
		t.Fatalf("principal fields mismatch: %+v", p)
	}
	if len(p.Roles) != 2 || !p.HasRole("ADMIN") || !p.HasRole("USER") {
		t.Fatalf("unexpected roles: %v", p.Roles)
	}
	if p.HasRole("MODERATOR") {
		t.Fatalf("principal must not report unheld roles")
	}
}
