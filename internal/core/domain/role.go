package domain

// Role is the capability tier attached to a User.
type Role string

const (
	RoleNewsmaker Role = "Newsmaker"
	RoleNewsroom  Role = "Newsroom"
	RoleEditor    Role = "Editor"
	RoleSupport   Role = "Support"
	RoleAdmin     Role = "Admin"
)

// DefaultRole is applied to users constructed without an explicit role.
const DefaultRole = RoleNewsmaker

// Roles lists every role a user record may carry.
var Roles = []Role{RoleNewsmaker, RoleNewsroom, RoleEditor, RoleSupport, RoleAdmin}

// AssignableRoles are the only targets of an admin role assignment.
// Newsmaker and Newsroom cannot be granted through that path.
var AssignableRoles = []Role{RoleAdmin, RoleEditor, RoleSupport}

// ParseRole matches s exactly (case-sensitive) against the known roles.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Assignable reports whether r may be granted by an admin.
func (r Role) Assignable() bool {
	for _, a := range AssignableRoles {
		if a == r {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
