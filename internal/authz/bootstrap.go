package authz

import (
	"fmt"

	"github.com/whitebirds/internal/constants"
)

// RoleSeed built-in role with its grants
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds roles created at startup.
// Only customers may reach the session routes; any other role ends up with 403.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/api/personal", Action: "GET"},
				{Object: "/api/personal/update", Action: "PUT"},
				{Object: "/api/profile/update", Action: "PUT"},
				{Object: "/api/cart", Action: "GET"},
				{Object: "/api/cart", Action: "POST"},
				{Object: "/api/cart/order-all", Action: "POST"},
				{Object: "/api/cart/:id", Action: "PUT"},
				{Object: "/api/cart/:id", Action: "DELETE"},
				{Object: "/api/orders", Action: "GET"},
				{Object: "/api/orders", Action: "POST"},
				{Object: "/api/orders/:id", Action: "GET"},
				{Object: "/api/orders/:id/cancel", Action: "PUT"},
				{Object: "/api/reviews", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles creates the built-in roles and their grants; existing rows are kept
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy %s %s failed: %w", policy.Action, policy.Object, err)
			}
		}
	}
	return nil
}
