package permissions

import (
	"testing"

	"github.com/craftora/craftora-backend/internal/domain"
)

func TestResolveRole(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		profile       *domain.UserProfile
		cfg           RoleResolverConfig
		want          domain.Role
	}{
		{"unauthenticated", false, nil, RoleResolverConfig{}, domain.RoleAnonymous},
		{"unauthenticated ignores fallback", false, nil, RoleResolverConfig{FallbackCustomer: true}, domain.RoleAnonymous},
		{"no profile fails closed", true, nil, RoleResolverConfig{}, domain.RoleNone},
		{"no profile with fallback", true, nil, RoleResolverConfig{FallbackCustomer: true}, domain.RoleCustomer},
		{"business profile", true, &domain.UserProfile{Type: domain.ProfileTypeBusiness}, RoleResolverConfig{}, domain.RoleBusiness},
		{"customer profile", true, &domain.UserProfile{Type: domain.ProfileTypeCustomer}, RoleResolverConfig{}, domain.RoleCustomer},
		{"unknown type fails closed", true, &domain.UserProfile{Type: "vendor"}, RoleResolverConfig{}, domain.RoleNone},
		{"unknown type with fallback", true, &domain.UserProfile{Type: "vendor"}, RoleResolverConfig{FallbackCustomer: true}, domain.RoleCustomer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveRole(tc.authenticated, tc.profile, tc.cfg)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
