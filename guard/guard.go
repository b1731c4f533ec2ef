package guard

import (
	"context"

	goPortal "github.com/caribevibes/goPortal"
)

// Guard defines a public type used by goPortal APIs.
//
// Guard evaluates whether navigation to route may proceed. A false return
// means the guard has already redirected through its navigator.
type Guard func(ctx context.Context, route string) bool

// RequireAuth builds the guard protecting authenticated-only routes. An
// unauthenticated visitor is redirected to the login route.
func RequireAuth(sessions *goPortal.SessionManager, nav goPortal.Navigator, routes goPortal.RoutesConfig) Guard {
	return func(ctx context.Context, route string) bool {
		if sessions.ForceCheckAuthentication(ctx) {
			sessions.NoteGuardDecision(route, true)
			return true
		}
		sessions.NoteGuardDecision(route, false)
		navigate(nav, routes.Login)
		return false
	}
}

// RequireAdmin builds the guard protecting the admin area. An authenticated
// non-admin is sent to the home route; an unauthenticated visitor to login.
func RequireAdmin(sessions *goPortal.SessionManager, nav goPortal.Navigator, routes goPortal.RoutesConfig) Guard {
	return func(ctx context.Context, route string) bool {
		if !sessions.ForceCheckAuthentication(ctx) {
			sessions.NoteGuardDecision(route, false)
			navigate(nav, routes.Login)
			return false
		}
		if !sessions.IsAdmin() {
			sessions.NoteGuardDecision(route, false)
			navigate(nav, routes.Home)
			return false
		}
		sessions.NoteGuardDecision(route, true)
		return true
	}
}

// RequireClient is the inverse of [RequireAdmin]: it keeps administrators out
// of the customer-facing area, redirecting them to the admin area instead. An
// unauthenticated visitor is redirected to login.
func RequireClient(sessions *goPortal.SessionManager, nav goPortal.Navigator, routes goPortal.RoutesConfig) Guard {
	return func(ctx context.Context, route string) bool {
		if !sessions.ForceCheckAuthentication(ctx) {
			sessions.NoteGuardDecision(route, false)
			navigate(nav, routes.Login)
			return false
		}
		if sessions.IsAdmin() {
			sessions.NoteGuardDecision(route, false)
			navigate(nav, routes.AdminArea)
			return false
		}
		sessions.NoteGuardDecision(route, true)
		return true
	}
}

func navigate(nav goPortal.Navigator, route string) {
	if nav != nil {
		nav.Navigate(route)
	}
}
