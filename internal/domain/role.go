package domain

// Role represents the permission level of a board member
type Role string

const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// IsValid reports whether the role is one of the accepted values
func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleMember, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
