package goPortal

import (
	"encoding/json"
	"testing"
)

func TestRoleSetHas(t *testing.T) {
	roles := RoleSet{RoleUser, RoleAdmin}

	if !roles.Has(RoleAdmin) || !roles.Has(RoleUser) {
		t.Fatal("expected membership")
	}
	if roles.Has("MODERATOR") {
		t.Fatal("unexpected membership")
	}
	if (RoleSet)(nil).Has(RoleUser) {
		t.Fatal("nil set has no members")
	}
}

func TestRoleSetTolerantDecoding(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"array", `{"roleNames":["USER","ADMIN"]}`, 2},
		{"empty array", `{"roleNames":[]}`, 0},
		{"null", `{"roleNames":null}`, 0},
		{"absent", `{}`, 0},
		{"wrong type string", `{"roleNames":"ADMIN"}`, 0},
		{"wrong type number", `{"roleNames":42}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var user User
			if err := json.Unmarshal([]byte(tc.raw), &user); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if len(user.Roles) != tc.want {
				t.Fatalf("roles = %v, want %d entries", user.Roles, tc.want)
			}
			// Role checks never panic regardless of decode shape.
			_ = user.Roles.Has(RoleAdmin)
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	withMessage := &APIError{Status: 409, Path: "/auth/register", Message: "email already registered"}
	if got := withMessage.Error(); got != "api error: status 409 on /auth/register: email already registered" {
		t.Fatalf("Error() = %q", got)
	}

	bare := &APIError{Status: 500, Path: "/hotels"}
	if got := bare.Error(); got != "api error: status 500 on /hotels" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	nav := NavigatorFunc(func(route string) { got = route })
	nav.Navigate("/login")
	if got != "/login" {
		t.Fatalf("route = %q", got)
	}
}
