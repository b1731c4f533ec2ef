// Package guard provides route access guards for view-layer navigation.
//
// A guard answers one question synchronously: may the current session enter
// this route right now. Denial always produces a redirect through the
// configured navigator, never an error; a view either renders or the user is
// sent somewhere that will.
//
// # Architecture boundaries
//
// guard imports the root package and nothing below it. It never touches
// session storage directly; every decision goes through
// [goPortal.SessionManager.ForceCheckAuthentication] so that a stale published
// state cannot admit an expired session.
//
// # What this package must NOT do
//
//   - it must NOT return errors from guard evaluation; the outcome space is
//     allow or redirect, nothing else
//   - it must NOT cache authentication decisions between evaluations
//   - it must NOT bypass the session manager to read persisted state
package guard
