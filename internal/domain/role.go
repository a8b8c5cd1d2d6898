package domain

// Role is the resolved authorization role of a request principal. It is a
// closed set: permission checks switch over it exhaustively instead of
// falling back to a default.
type Role string

const (
	// RoleAnonymous marks an unauthenticated principal.
	RoleAnonymous Role = "anonymous"
	// RoleNone marks an authenticated principal without a usable profile.
	// It never satisfies a role requirement.
	RoleNone     Role = "none"
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
)

// ProfileType values persisted on UserProfile. They intentionally mirror the
// role tags so profile type maps 1:1 onto a role.
const (
	ProfileTypeBusiness = "business"
	ProfileTypeCustomer = "customer"
)

func ValidProfileType(t string) bool {
	return t == ProfileTypeBusiness || t == ProfileTypeCustomer
}
