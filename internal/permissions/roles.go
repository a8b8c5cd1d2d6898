// Package permissions is the single authority for authorization in this
// backend. Roles are resolved from the principal's profile, and every
// (resource, verb) pair is checked against one declarative rule table
// instead of per-handler predicates.
package permissions

import (
	"github.com/craftora/craftora-backend/internal/domain"
)

// RoleResolverConfig controls the one deliberately configurable ambiguity:
// how to treat an authenticated principal without a profile (or with an
// unknown profile type). The default fails closed (RoleNone); setting
// FallbackCustomer restores the legacy treat-as-customer behavior.
type RoleResolverConfig struct {
	FallbackCustomer bool
}

// ResolveRole maps an authentication state plus an optional profile onto a
// role. It never guesses: an unknown or missing profile yields RoleNone
// unless the fallback is explicitly enabled.
func ResolveRole(authenticated bool, profile *domain.UserProfile, cfg RoleResolverConfig) domain.Role {
	if !authenticated {
		return domain.RoleAnonymous
	}
	if profile == nil {
		if cfg.FallbackCustomer {
			return domain.RoleCustomer
		}
		return domain.RoleNone
	}
	switch profile.Type {
	case domain.ProfileTypeBusiness:
		return domain.RoleBusiness
	case domain.ProfileTypeCustomer:
		return domain.RoleCustomer
	default:
		if cfg.FallbackCustomer {
			return domain.RoleCustomer
		}
		return domain.RoleNone
	}
}
