package authz

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithGrantedPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("customer", "/api/orders/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("customer", "/api/orders/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("customer", "/api/orders/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	policies, err := svc.GetRolePolicies("customer")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Subject != "role:customer" || policies[0].Action != "GET" {
		t.Fatalf("unexpected policies: %+v", policies)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/orders/:id", want: "/api/orders/:id"},
		{in: "api/cart", want: "/api/cart"},
		{in: "/api/cart/", want: "/api/cart"},
		{in: "/", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// second run is a no-op
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("repeat bootstrap failed: %v", err)
	}

	linked, err := svc.enforcer.HasNamedGroupingPolicy("g", "role:customer", roleAnchor)
	if err != nil || !linked {
		t.Fatalf("customer role should be registered: linked=%v err=%v", linked, err)
	}
	policies, err := svc.GetRolePolicies("customer")
	if err != nil {
		t.Fatalf("get policies failed: %v", err)
	}
	if len(policies) != len(BuiltinRoleSeeds()[0].Policies) {
		t.Fatalf("policies want %d got %d", len(BuiltinRoleSeeds()[0].Policies), len(policies))
	}

	cases := []struct {
		role   string
		route  string
		method string
		want   bool
	}{
		{"customer", "/api/cart/:id", "DELETE", true},
		{"customer", "/api/orders/:id/cancel", "PUT", true},
		{"customer", "/api/orders/:id/cancel", "POST", false},
		{"admin", "/api/cart", "GET", false},
		{"", "/api/cart", "GET", false},
		{"__anchor__", "/api/cart", "GET", false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.route, tc.method)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.method, tc.route, err)
		}
		if allow != tc.want {
			t.Fatalf("enforce %s %s %s want %v got %v", tc.role, tc.method, tc.route, tc.want, allow)
		}
	}
}
