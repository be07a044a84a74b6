package domain

import "github.com/aussiebroadwan/tasktab/pkg/jwtx"

// Principal is the resolved identity a verified session token maps to:
// exactly one of User or Admin is set, matching the role claim. It is built
// once per request by the route guard and passed down explicitly.
type Principal struct {
	Role  jwtx.Role
	User  *User
	Admin *Admin
}

// ID returns the underlying principal id.
func (p Principal) ID() string {
	switch {
	case p.User != nil:
		return p.User.ID
	case p.Admin != nil:
		return p.Admin.ID
	default:
		return ""
	}
}

// IsAdmin reports whether the principal carries the admin role claim.
func (p Principal) IsAdmin() bool { return p.Role == jwtx.RoleAdmin }
