// Package goPortal provides the client-side session and token lifecycle for the
// Caribe Vibes booking API: login, registration, durable session persistence,
// silent refresh-on-401, and synchronous route-access checks.
//
// The package is designed for interactive clients: [SessionManager] methods are safe
// to call from multiple goroutines after initialization through [Builder.Build], and
// guard evaluation never blocks on in-flight network calls.
//
// # Architecture boundaries
//
// goPortal is the public surface. It exposes [SessionManager], [Builder], [Config],
// the [RequestAuthenticator] transport, and value types (User, AuthResponse,
// MetricsSnapshot, etc.). Session persistence lives under session/, navigation
// guards under guard/, typed resource clients under services/, and audit dispatch
// under internal/.
//
// # What this package must NOT do
//
//   - Expose storage backends or persisted key layouts in its public API.
//   - Validate token signatures (the backend owns the credential; the client only
//     inspects expiry).
//   - Import guard/ or services/ (no import cycles; those packages import goPortal).
//
// # Session contract
//
// The persisted triple (token, expiry, user) is always written and cleared together.
// A persisted expiry in the past means logged out, regardless of what storage still
// holds; [SessionManager.CheckTokenValidity] clears such state lazily. Rehydration
// happens synchronously inside [Builder.Build], so a guard that runs immediately
// after construction never observes an empty session for an already-logged-in user.
package goPortal
