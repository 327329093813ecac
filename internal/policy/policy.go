// Package policy maps board membership to an effective role and each role
// to an explicit capability set. It is pure and carries no storage or
// transport dependencies so the permission table stays testable on its own.
package policy

import (
	"github.com/google/uuid"

	"taskboard-api/internal/domain"
)

// Capabilities is the explicit set of operations a role may perform on a
// board. Historical variants disagreed on whether members may create
// tasks; the canonical table says they can. Members cannot delete tasks
// or manage membership.
type Capabilities struct {
	CanCreate        bool
	CanEdit          bool
	CanMove          bool
	CanDelete        bool
	CanManageMembers bool
}

var capabilityTable = map[domain.Role]Capabilities{
	domain.RoleAdmin: {
		CanCreate:        true,
		CanEdit:          true,
		CanMove:          true,
		CanDelete:        true,
		CanManageMembers: true,
	},
	domain.RoleEditor: {
		CanCreate: true,
		CanEdit:   true,
		CanMove:   true,
	},
	domain.RoleMember: {
		CanCreate: true,
		CanEdit:   true,
		CanMove:   true,
	},
	domain.RoleViewer: {},
}

// For returns the capability set for a role. Unknown roles get the
// viewer (empty) set.
func For(role domain.Role) Capabilities {
	caps, ok := capabilityTable[role]
	if !ok {
		return Capabilities{}
	}
	return caps
}

// ResolveRole determines the effective role of a user on a board. The
// owner is always admin regardless of the members list. Non-members fall
// back to viewer; callers are expected to have rejected non-members with
// NotFound/Forbidden before relying on the returned role.
func ResolveRole(board *domain.Board, userID uuid.UUID) domain.Role {
	if board.OwnerID == userID {
		return domain.RoleAdmin
	}
	for _, m := range board.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return domain.RoleViewer
}

// IsMember reports whether the user may view the board at all, i.e. is
// the owner or present in the members list.
func IsMember(board *domain.Board, userID uuid.UUID) bool {
	if board.OwnerID == userID {
		return true
	}
	for _, m := range board.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// Normalize coerces an arbitrary role string to a known role, defaulting
// to viewer.
func Normalize(role string) domain.Role {
	r := domain.Role(role)
	if r.IsValid() {
		return r
	}
	return domain.RoleViewer
}
