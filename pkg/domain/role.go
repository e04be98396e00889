package domain

// Role names a capability a principal may hold beyond record ownership.
type Role string

const (
	// RoleApprover may approve/reject leave requests and create/process
	// salary payments.
	RoleApprover Role = "approver"
)

// Roles is the set of roles attached to an authenticated principal.
type Roles []Role

// Has reports whether the role set contains the given role.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}
