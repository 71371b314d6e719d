package auth

import "strings"

// Role is the coarse privilege tier assigned to a back-office account.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleUser       Role = "user"
)

// roleLevels is the total order over roles. Higher means more privilege.
// New roles are inserted here at a specific rank without touching call sites.
var roleLevels = map[Role]int{
	RoleSuperAdmin: 4,
	RoleAdmin:      3,
	RoleEditor:     2,
	RoleUser:       1,
}

// ParseRole normalizes a raw role string. ok is false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.TrimSpace(strings.ToLower(raw)))
	_, ok := roleLevels[role]
	return role, ok
}

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the numeric rank of a role; unknown roles rank below every
// valid role.
func Level(r Role) int {
	return roleLevels[r]
}

// CanModifyOther reports whether acting may mutate a record owned by a
// different principal with role target. Strictly greater rank is required,
// so no role — super_admin included — can touch another super_admin.
func CanModifyOther(acting, target Role) bool {
	if !acting.Valid() || !target.Valid() {
		return false
	}
	return Level(acting) > Level(target)
}

// CanModifySelf reports whether the acting principal is editing its own
// record. The check is purely identity-based: a super_admin editing their
// own profile is allowed even though CanModifyOther would deny it.
func CanModifySelf(actingID, targetID string) bool {
	return actingID != "" && actingID == targetID
}

// CanAssign reports whether acting may grant the requested role to a new or
// existing account. Granting follows the same strict ordering as
// modification, which keeps super_admin unmintable through the API.
func CanAssign(acting, requested Role) bool {
	return CanModifyOther(acting, requested)
}

// HasAnyRole is the coarse endpoint gate: membership in an allowed set,
// distinct from the pairwise hierarchy checks above.
func HasAnyRole(r Role, allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
