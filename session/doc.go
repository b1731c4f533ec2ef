// Package session provides the durable key-value persistence behind the goPortal
// session manager, together with the codec between the in-memory [Session] model
// and the persisted key triple.
//
// # Persisted layout
//
// A session is three keys written as whole-value replacements: "token" (opaque
// bearer string), "tokenExpiry" (RFC 3339 UTC timestamp), and "currentUser"
// (JSON-serialized user object). The three are written together by [Save] and
// removed together by [Clear]; the write sequence is token, expiry, user, so a
// reader interleaved with a writer can at worst observe a token with a stale
// expiry — [Load] treats any incomplete triple as no session.
//
// # Architecture boundaries
//
// This package owns the [Store] abstraction and its backends (memory, file,
// Redis). It does NOT interpret tokens, decode the user object, or decide
// validity — those responsibilities belong to the session manager.
//
// # What this package must NOT do
//
//   - Import goPortal or any sibling package (no upward imports).
//   - Apply expiry policy ([Session.Valid] is a pure timestamp comparison; the
//     manager decides what to do with an expired session).
package session
