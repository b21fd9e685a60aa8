package constants

// Canonical role and account-status values carried in JWT claims.
// They live here, below both the middleware and the users package,
// so the route guards can reason about claims without importing the
// user domain.

const (
	RoleTourist = "TOURIST"
	RoleGuide   = "GUIDE"
	RoleAdmin   = "ADMIN"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusBlocked  = "BLOCKED"
	StatusDeleted  = "DELETED"
)

// DashboardPathFor returns the landing page a client of the given role
// should be sent to when it requests a route group it is not allowed into.
func DashboardPathFor(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleGuide:
		return "/guide/dashboard"
	default:
		return "/tourist/dashboard"
	}
}

// StatusMayAuthenticate reports whether an account in the given status
// may hold a session.
func StatusMayAuthenticate(status string) bool {
	return status == StatusActive || status == StatusInactive
}
