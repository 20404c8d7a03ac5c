package identity

import (
	"github.com/google/uuid"
)

// Principal is the request-scoped identity resolved from a bearer token.
// It is passed explicitly into every service call instead of living in
// ambient state, so handlers and tests can construct fake identities.
type Principal struct {
	UserID         uuid.UUID
	OrganizationID *uuid.UUID
	Name           string
	Roles          []Role
	IsSuperAdmin   bool
	IsOrgAdmin     bool
}

// HasRole reports whether the principal holds the given role
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanManageUsers reports whether the principal may administer users
func (p Principal) CanManageUsers() bool {
	return p.IsSuperAdmin || p.IsOrgAdmin || p.HasRole(RoleAdmin)
}

// OrgID returns the principal's organization id, or uuid.Nil for the
// global super admin.
func (p Principal) OrgID() uuid.UUID {
	if p.OrganizationID == nil {
		return uuid.Nil
	}
	return *p.OrganizationID
}
