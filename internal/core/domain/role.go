package domain

import "errors"

// ErrRoleNotFound means a baseline role record is missing from the store.
// That is a deployment misconfiguration (provisioning was never run), not a
// user error, so callers must fail loudly rather than fall back.
var ErrRoleNotFound = errors.New("role not found")

// RoleName is the canonical name of an authorization level.
type RoleName string

const (
	RoleUser      RoleName = "USER"
	RoleModerator RoleName = "MODERATOR"
	RoleAdmin     RoleName = "ADMIN"
)

// IsValid reports whether the name is one of the canonical roles.
func (r RoleName) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// BaselineRoles returns the fixed set of roles that must exist before
// registration or elevation can succeed.
func BaselineRoles() []RoleName {
	return []RoleName{RoleUser, RoleModerator, RoleAdmin}
}

// Role is a named authorization level attachable to a User. At most one
// record exists per name; records are created by provisioning and never
// change afterwards.
type Role struct {
	ID   string   `json:"id"`
	Name RoleName `json:"name"`
}

// ResolveRoleLabel maps a signup role label to a canonical role name.
// Labels are case-sensitive; anything that is not "admin" or "mod" —
// unrecognized strings and the empty label included — resolves to USER.
// Unknown labels deliberately do not error; see the registration service.
func ResolveRoleLabel(label string) RoleName {
	switch label {
	case "admin":
		return RoleAdmin
	case "mod":
		return RoleModerator
	default:
		return RoleUser
	}
}
